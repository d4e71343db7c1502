// Command termdebug runs a subprocess under a pty and logs every byte that
// crosses stdin and stdout, raw escape sequences included. It exists to help
// diagnose what a particular terminal actually sends for a given keystroke
// when writing a keymap entry: run `termdebug -o keys.log -- cat`, press the
// key in question, and read the logged bytes back out of the log file.
package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/creack/pty"
	"github.com/jessevdk/go-flags"
	"golang.org/x/term"
)

type cliOptions struct {
	LogPath string `short:"o" long:"log" default:"debug.txt" description:"path to write the raw byte log to"`
	Args    struct {
		Command []string `positional-arg-name:"command" required:"1"`
	} `positional-args:"yes"`
}

func debugCopy(dst io.Writer, src io.Reader, log io.Writer, name string) {
	buf := make([]byte, 4096)
	for {
		nr, errR := src.Read(buf)
		if nr > 0 {
			fmt.Fprintf(log, "%s: %q\n", name, buf[:nr])
			nw, errW := dst.Write(buf[:nr])
			if nw < 0 || nr < nw {
				fmt.Fprintf(log, "%s: invalid write (nr=%d, nw=%d)\n", name, nr, nw)
			}
			if errW != nil {
				fmt.Fprintf(log, "%s: write error: %+v\n", name, errW)
				break
			}
			if nr != nw {
				fmt.Fprintf(log, "%s: short write (nr=%d, nw=%d)\n", name, nr, nw)
				break
			}
		}
		if errR != nil {
			if errR != io.EOF {
				fmt.Fprintf(log, "%s: read error: %+v\n", name, errR)
			}
			break
		}
	}
}

func main() {
	var cli cliOptions
	parser := flags.NewParser(&cli, flags.Default)
	if _, err := parser.Parse(); err != nil {
		os.Exit(1)
	}

	c := exec.Command(cli.Args.Command[0], cli.Args.Command[1:]...)

	logFile, err := os.Create(cli.LogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "termdebug: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	ptmx, err := pty.Start(c)
	if err != nil {
		fmt.Fprintf(os.Stderr, "termdebug: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = ptmx.Close() }()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGWINCH)
	go func() {
		for range ch {
			if err := pty.InheritSize(os.Stdin, ptmx); err != nil {
				fmt.Fprintf(logFile, "resize error: %s\n", err)
			}
		}
	}()
	ch <- syscall.SIGWINCH
	defer func() { signal.Stop(ch); close(ch) }()

	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "termdebug: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = term.Restore(int(os.Stdin.Fd()), oldState) }()

	// Keep reading stdin in the background; it only returns after the next
	// keystroke following subprocess exit.
	go func() {
		debugCopy(ptmx, os.Stdin, logFile, "stdin")
	}()

	debugCopy(os.Stdout, ptmx, logFile, "stdout")
}
