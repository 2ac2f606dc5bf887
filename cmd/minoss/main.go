// Command minoss serves script units over HTTP.
package main

func main() {
	Execute()
}
