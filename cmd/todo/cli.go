package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/phrazzld/todo-api/internal/client"
)

const usage = `Usage: todo [flags] <command> [args]

Commands:
  register [email]        create an account
  login [email]           sign in and remember the session
  logout                  forget the session
  whoami                  show the signed-in user
  list                    list your tasks
  add <title>             add a task
  done <id>               mark a task completed
  undo <id>               mark a task not completed
  rename <id> <title>     change a task's title
  rm <id>                 delete a task

Flags:
`

// readPassword reads a password without echo. Tests replace it.
var readPassword = term.ReadPassword

// isTerminal reports whether fd is a terminal. Tests replace it.
var isTerminal = term.IsTerminal

type cli struct {
	stdin  *bufio.Reader
	stdinF *os.File
	stdout io.Writer
	stderr io.Writer
}

func newCLI(stdin io.Reader, stdout, stderr io.Writer) *cli {
	c := &cli{
		stdin:  bufio.NewReader(stdin),
		stdout: stdout,
		stderr: stderr,
	}
	if f, ok := stdin.(*os.File); ok {
		c.stdinF = f
	}
	return c
}

// run parses flags, dispatches the command and returns the exit code.
func (c *cli) run(ctx context.Context, args []string) int {
	fs := pflag.NewFlagSet("todo", pflag.ContinueOnError)
	fs.SetOutput(c.stderr)
	apiURL := fs.String("api-url", envOr("TODO_API_URL", client.DefaultBaseURL), "API base URL")
	sessionFile := fs.String("session", os.Getenv("TODO_SESSION_FILE"), "session file (default: user config dir)")
	fs.Usage = func() {
		fmt.Fprint(c.stderr, usage)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	path := *sessionFile
	if path == "" {
		var err error
		if path, err = client.DefaultSessionPath(); err != nil {
			fmt.Fprintln(c.stderr, err)
			return 1
		}
	}
	api := client.New(*apiURL, client.NewFileSessionStore(path))

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	if err := c.dispatch(ctx, api, cmd, rest); err != nil {
		c.printError(err)
		if errors.Is(err, errUsage) {
			return 2
		}
		return 1
	}
	return 0
}

var errUsage = errors.New("usage")

func usageError(format string, a ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{errUsage}, a...)...)
}

func (c *cli) dispatch(ctx context.Context, api *client.Client, cmd string, args []string) error {
	switch cmd {
	case "register":
		return c.register(ctx, api, args)
	case "login":
		return c.login(ctx, api, args)
	case "logout":
		if err := api.Logout(); err != nil {
			return err
		}
		fmt.Fprintln(c.stdout, "Logged out")
		return nil
	case "whoami":
		email, err := api.Me(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.stdout, email)
		return nil
	case "list", "ls":
		return c.list(ctx, api)
	case "add":
		if len(args) == 0 {
			return usageError("todo add <title>")
		}
		task, err := api.CreateTask(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Fprintf(c.stdout, "Added %d: %s\n", task.ID, task.Title)
		return nil
	case "done", "undo":
		id, err := parseID(cmd, args)
		if err != nil {
			return err
		}
		completed := cmd == "done"
		task, err := api.UpdateTask(ctx, id, client.TaskUpdate{Completed: &completed})
		if err != nil {
			return err
		}
		c.printTask(*task)
		return nil
	case "rename":
		if len(args) < 2 {
			return usageError("todo rename <id> <title>")
		}
		id, err := parseID(cmd, args[:1])
		if err != nil {
			return err
		}
		title := strings.Join(args[1:], " ")
		task, err := api.UpdateTask(ctx, id, client.TaskUpdate{Title: &title})
		if err != nil {
			return err
		}
		c.printTask(*task)
		return nil
	case "rm", "delete":
		id, err := parseID(cmd, args)
		if err != nil {
			return err
		}
		if err := api.DeleteTask(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(c.stdout, "Deleted %d\n", id)
		return nil
	default:
		return usageError("unknown command %q", cmd)
	}
}

func (c *cli) register(ctx context.Context, api *client.Client, args []string) error {
	email, password, err := c.credentials(args)
	if err != nil {
		return err
	}
	msg, err := api.Register(ctx, email, password)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, msg)
	return nil
}

func (c *cli) login(ctx context.Context, api *client.Client, args []string) error {
	email, password, err := c.credentials(args)
	if err != nil {
		return err
	}
	session, err := api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "Logged in as %s\n", session.User)
	return nil
}

func (c *cli) list(ctx context.Context, api *client.Client) error {
	tasks, err := api.ListTasks(ctx)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		fmt.Fprintln(c.stdout, "No tasks yet")
		return nil
	}
	for _, t := range tasks {
		c.printTask(t)
	}
	return nil
}

func (c *cli) printTask(t client.Task) {
	mark := " "
	if t.Completed {
		mark = "x"
	}
	fmt.Fprintf(c.stdout, "[%s] %d  %s\n", mark, t.ID, t.Title)
}

func (c *cli) printError(err error) {
	if errors.Is(err, client.ErrSessionExpired) {
		fmt.Fprintln(c.stderr, "Your session has expired. Please log in again.")
	} else {
		fmt.Fprintln(c.stderr, err)
	}
	if errors.Is(err, client.ErrNotLoggedIn) || errors.Is(err, client.ErrSessionExpired) {
		fmt.Fprintln(c.stderr, "Run `todo login` to sign in.")
	}
}

// credentials takes the email from args or prompts for it, then reads the
// password without echo when stdin is a terminal.
func (c *cli) credentials(args []string) (string, string, error) {
	var email string
	if len(args) > 0 {
		email = args[0]
	} else {
		fmt.Fprint(c.stdout, "Email: ")
		line, err := c.readLine()
		if err != nil {
			return "", "", err
		}
		email = line
	}

	fmt.Fprint(c.stdout, "Password: ")
	if c.stdinF != nil && isTerminal(int(c.stdinF.Fd())) {
		pw, err := readPassword(int(c.stdinF.Fd()))
		fmt.Fprintln(c.stdout)
		if err != nil {
			return "", "", fmt.Errorf("failed to read password: %w", err)
		}
		return email, string(pw), nil
	}

	password, err := c.readLine()
	if err != nil {
		return "", "", err
	}
	return email, password, nil
}

func (c *cli) readLine() (string, error) {
	line, err := c.stdin.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func parseID(cmd string, args []string) (int64, error) {
	if len(args) != 1 {
		return 0, usageError("todo %s <id>", cmd)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, usageError("invalid task id %q", args[0])
	}
	return id, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
