// Command hobctl inspects and migrates firmware HOB list images.
package main

func main() {
	execute()
}
