package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn and printFn are test seams for user-facing output.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

// execIface is the command surface the REPL dispatches to. App satisfies
// it; tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error
	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	Docs(ctx context.Context, category string) error
	Download(ctx context.Context, name string) error
	Courses(ctx context.Context, query string) error
	Course(ctx context.Context, n string) error
	Faculty(ctx context.Context, query string) error
	Fields(ctx context.Context, tags string) error
}

const (
	helpAnonymous = "Available commands: signup, login, status, courses [query], course <n>, faculty [query], fields <tag>[,tag], exit"
	helpSignedIn  = "Available commands: status, profile, editprofile, password, docs [cv|dars], download <name|n>, courses [query], course <n>, faculty [query], fields <tag>[,tag], logout, exit"
)

// runREPL reads commands from r until EOF or "exit"/"quit".
//
// The first word of a line selects the command; the rest of the line is
// passed as its argument, so queries may contain spaces. Account commands
// require a session and signup/login require none. Command errors are
// printed and the loop carries on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, r *bufio.Reader) {
	for {
		printFn(fmt.Sprintf("madhelp %s> ", statusFn()))
		line, err := r.ReadString('\n')
		if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
			printlnFn()
			return
		}

		cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
		arg = strings.TrimSpace(arg)
		if cmd == "" {
			if err != nil {
				return
			}
			continue
		}

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpAnonymous)
			}

		case "signup", "register":
			if guestOnly(a) {
				cmdErr = a.Signup(ctx)
			}
		case "login":
			if guestOnly(a) {
				cmdErr = a.Login(ctx)
			}

		case "status":
			cmdErr = a.Status(ctx)

		case "logout":
			if signedIn(a) {
				cmdErr = a.Logout(ctx)
			}
		case "profile":
			if signedIn(a) {
				cmdErr = a.Profile(ctx)
			}
		case "editprofile":
			if signedIn(a) {
				cmdErr = a.EditProfile(ctx)
			}
		case "password":
			if signedIn(a) {
				cmdErr = a.ChangePassword(ctx)
			}
		case "docs":
			if signedIn(a) {
				cmdErr = a.Docs(ctx, arg)
			}
		case "download":
			if arg == "" {
				printlnFn("Usage: download <name|n>")
				continue
			}
			if signedIn(a) {
				cmdErr = a.Download(ctx, arg)
			}

		case "courses":
			cmdErr = a.Courses(ctx, arg)
		case "course":
			if arg == "" {
				printlnFn("Usage: course <n>")
				continue
			}
			cmdErr = a.Course(ctx, arg)
		case "faculty":
			cmdErr = a.Faculty(ctx, arg)
		case "fields":
			if arg == "" {
				printlnFn("Usage: fields <tag>[,tag]")
				continue
			}
			cmdErr = a.Fields(ctx, arg)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", userMessage(cmdErr))
		}
		if err != nil {
			return
		}
	}
}

func signedIn(a execIface) bool {
	if !a.isLoggedIn() {
		printlnFn("Please log in first.")
		return false
	}
	return true
}

func guestOnly(a execIface) bool {
	if a.isLoggedIn() {
		printlnFn("You are already logged in. Use 'logout' first.")
		return false
	}
	return true
}
