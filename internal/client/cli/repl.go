package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it
// with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to
// operate. The real App type satisfies this interface; tests can provide
// a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Signup(ctx context.Context) error
	Logout(ctx context.Context) error
	Orders(ctx context.Context) error
	Open(ctx context.Context, arg string) error
	Accept(ctx context.Context) error
	Ready(ctx context.Context) error
	Verify(ctx context.Context, otp string) error
	Pickup(ctx context.Context) error
	Deliver(ctx context.Context) error
	Products(ctx context.Context) error
	AddProduct(ctx context.Context) error
	Onboarding(ctx context.Context) error
}

// Root starts the shell on the app's stdin.
func (a *App) Root(ctx context.Context) {
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, func() string {
		return fmt.Sprintf("%s | %s", a.route, a.Mode)
	}, scanner)
}

// runREPL reads a line, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back. The
// loop exits on scanner EOF or when the user types "exit" or "quit".
//
// Command handlers surface their own errors; the loop stays resilient
// and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("shop> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		arg := ""
		if len(parts) > 1 {
			arg = parts[1]
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: orders, open <n>, accept, ready, verify <code>, pickup, deliver, products, addproduct, onboarding, logout, exit")
			} else {
				printlnFn("Available commands: login, register, signup, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "register":
			_ = a.Register(ctx)

		case "signup":
			_ = a.Signup(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "o", "orders":
			_ = a.Orders(ctx)

		case "open":
			_ = a.Open(ctx, arg)

		case "accept":
			_ = a.Accept(ctx)

		case "ready":
			_ = a.Ready(ctx)

		case "verify":
			_ = a.Verify(ctx, arg)

		case "pickup":
			_ = a.Pickup(ctx)

		case "deliver":
			_ = a.Deliver(ctx)

		case "products":
			_ = a.Products(ctx)

		case "addproduct":
			_ = a.AddProduct(ctx)

		case "onboarding":
			_ = a.Onboarding(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
