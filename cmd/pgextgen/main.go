// pgextgen generates the SQL install script and control file for an
// extension module from its manifest.
package main

func main() {
	Execute()
}
