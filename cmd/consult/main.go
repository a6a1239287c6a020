// Command consult asks a human operator a question through Telegram
// and blocks until the answer arrives or a timeout elapses. It is
// meant to be called from autonomous automation loops, which branch on
// its exit code: 0 answered (yes, for confirm), 1 answered no, 2 no
// answer within the wait.
package main

import "os"

func main() {
	os.Exit(run(os.Args[1:]))
}
