// Command sitegrep crawls websites and searches their text for a keyword.
package main

func main() {
	Execute()
}
