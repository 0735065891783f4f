package fcall

import (
	"fmt"
	"reflect"

	"github.com/pgext-dev/pgext-sdk/datum"
	"github.com/pgext-dev/pgext-sdk/guard"
	"github.com/pgext-dev/pgext-sdk/pgsys"
)

var errType = reflect.TypeOf((*error)(nil)).Elem()

// Export is a native function adapted to the backend call protocol.
type Export struct {
	sig    Signature
	fn     reflect.Value
	args   []reflect.Type
	hasRet bool // fn returns a value (beyond a trailing error)
	hasErr bool // fn returns a trailing error
}

// NewExport validates fn against sig and wraps it. Supported forms:
//
//	func(args...)
//	func(args...) T
//	func(args...) error
//	func(args...) (T, error)
//
// where every parameter and T marshal per the datum package. Non-strict
// signatures must take every argument as a pointer type so SQL NULL has an
// explicit representation; otherwise registration fails.
func NewExport(sig Signature, fn any) (*Export, error) {
	v := reflect.ValueOf(fn)
	t := v.Type()
	if t.Kind() != reflect.Func {
		return nil, fmt.Errorf("fcall: export target must be a function, got %T", fn)
	}
	if t.IsVariadic() {
		return nil, fmt.Errorf("fcall: variadic functions are not supported")
	}
	if len(sig.Args) > pgsys.FuncMaxArgs {
		return nil, fmt.Errorf("fcall: %d arguments exceeds the backend maximum of %d",
			len(sig.Args), pgsys.FuncMaxArgs)
	}
	if t.NumIn() != len(sig.Args) {
		return nil, fmt.Errorf("fcall: signature declares %d arguments, function takes %d",
			len(sig.Args), t.NumIn())
	}

	e := &Export{sig: sig, fn: v, args: make([]reflect.Type, t.NumIn())}
	for i := 0; i < t.NumIn(); i++ {
		pt := t.In(i)
		oid, ok := datum.OidForType(pt)
		if !ok {
			return nil, fmt.Errorf("fcall: argument %d has unsupported type %s", i, pt)
		}
		if oid != sig.Args[i] {
			return nil, fmt.Errorf("fcall: argument %d is declared %s but %s marshals as %s",
				i, sig.Args[i], pt, oid)
		}
		if !sig.Strict && pt.Kind() != reflect.Pointer {
			return nil, fmt.Errorf(
				"fcall: non-strict function must take argument %d as *%s to represent NULL", i, pt)
		}
		e.args[i] = pt
	}

	switch t.NumOut() {
	case 0:
	case 1:
		if t.Out(0) == errType {
			e.hasErr = true
		} else {
			e.hasRet = true
		}
	case 2:
		if t.Out(1) != errType {
			return nil, fmt.Errorf("fcall: second return value must be error, got %s", t.Out(1))
		}
		e.hasRet = true
		e.hasErr = true
	default:
		return nil, fmt.Errorf("fcall: function returns %d values, at most (T, error) is supported",
			t.NumOut())
	}

	if e.hasRet {
		rt := t.Out(0)
		oid, ok := datum.OidForType(rt)
		if !ok {
			return nil, fmt.Errorf("fcall: return type %s is not supported", rt)
		}
		if oid != sig.Ret {
			return nil, fmt.Errorf("fcall: return is declared %s but %s marshals as %s",
				sig.Ret, rt, oid)
		}
	} else if sig.Ret != pgsys.OidVoid {
		return nil, fmt.Errorf("fcall: signature declares %s result but function returns no value",
			sig.Ret)
	}

	return e, nil
}

// Signature returns the declared signature.
func (e *Export) Signature() Signature { return e.sig }

// Call runs one invocation against the given call context and returns the
// result datum (null datum for a null result). The fixed sequence is:
// check arity and tags, decode arguments, strict short-circuit, invoke under
// the barrier, encode. Arity or tag disagreement with the registered
// signature is a configuration fault and is reported FATAL before the body
// runs; decode, invoke, and encode failures are classified by the barrier.
func (e *Export) Call(ci CallInfo) datum.Datum {
	n := len(e.sig.Args)
	if got := ci.NumArgs(); got != n {
		pgsys.Current().Report(pgsys.LevelFatal,
			fmt.Sprintf("call provides %d arguments, registered signature declares %d", got, n))
		return datum.Null(e.sig.Ret)
	}
	tags := make([]pgsys.Oid, n)
	for i := 0; i < n; i++ {
		// InvalidOid means the caller attached no type information, which
		// happens for direct fmgr calls; assume the declared tag then. A
		// recognized tag that disagrees with the signature is a
		// configuration fault; an unrecognized tag is left for the decoder,
		// which rejects it as a recoverable conversion error.
		tags[i] = e.sig.Args[i]
		at := ci.ArgType(i)
		if at == pgsys.InvalidOid || at == e.sig.Args[i] {
			continue
		}
		if _, known := at.SQLName(); known {
			pgsys.Current().Report(pgsys.LevelFatal,
				fmt.Sprintf("argument %d has type %s, registered signature declares %s",
					i, at, e.sig.Args[i]))
			return datum.Null(e.sig.Ret)
		}
		tags[i] = at
	}

	out := datum.Null(e.sig.Ret)
	guard.Protect(func() {
		if e.sig.Strict {
			for i := 0; i < n; i++ {
				if _, isNull := ci.Arg(i); isNull {
					return // null result, body never entered
				}
			}
		}

		in := make([]reflect.Value, n)
		for i := 0; i < n; i++ {
			raw, isNull := ci.Arg(i)
			v, err := datum.Decode(datum.FromRaw(raw, isNull, tags[i]), e.args[i])
			if err != nil {
				panic(err) // *datum.ConversionError, reported by the barrier
			}
			in[i] = v
		}

		results := e.fn.Call(in)

		if e.hasErr {
			last := results[len(results)-1]
			if !last.IsNil() {
				pgsys.Current().Report(pgsys.LevelError, last.Interface().(error).Error())
				return
			}
		}
		if e.hasRet {
			d, err := datum.Encode(results[0], e.sig.Ret)
			if err != nil {
				panic(err)
			}
			out = d
		}
	})
	return out
}
