package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/fjod/go_cart/storefront/internal/store"
	"github.com/urfave/cli/v2"
)

func shellCommand(env *environment) *cli.Command {
	return &cli.Command{
		Name:  "shell",
		Usage: "run commands against one session read from stdin",
		Action: func(c *cli.Context) error {
			if env.sess != nil {
				return fmt.Errorf("already in a shell")
			}
			sess, err := openSession(c.Context, env.cfg, env.log)
			if err != nil {
				return err
			}
			defer sess.Close()
			return runShell(c, env, sess)
		},
	}
}

func runShell(c *cli.Context, env *environment, sess *session) error {
	out := c.App.Writer

	var cartChanges int
	unsubscribe := sess.store.Subscribe(store.TopicCart, func() { cartChanges++ })
	defer unsubscribe()

	child := &environment{out: out, in: c.App.Reader, cfg: env.cfg, log: env.log, sess: sess}
	scanner := bufio.NewScanner(c.App.Reader)

	fmt.Fprintf(out, "session %s (%s)\n", sess.store.SessionID(), sess.store.Phase())
	for {
		fmt.Fprintf(out, "[%d] > ", sess.store.CartState().CartCount())
		if !scanner.Scan() {
			fmt.Fprintln(out)
			break
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "exit" || fields[0] == "quit" {
			break
		}
		args := append([]string{c.App.Name}, fields...)
		if err := newApp(child).RunContext(c.Context, args); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
		if c.Context.Err() != nil {
			break
		}
	}

	fmt.Fprintf(out, "%d cart changes this session\n", cartChanges)
	return scanner.Err()
}
