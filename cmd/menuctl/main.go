package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"

	"github.com/pribylovaa/menu-service/pkg/menuclient"
)

const usage = `usage: menuctl [-addr URL] [-session PATH] <command> [flags]

commands:
  login  -u USER -p PASS
  logout
  whoami
  list
  search NAME
  get ID
  create -nome N -ordem O -icone I [-descricao D] [-status Ativo|Inativo]
  update ID -nome N -ordem O -icone I [-descricao D] [-status Ativo|Inativo]
  delete ID
`

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

// run разбирает глобальные флаги и выполняет подкоманду. Возвращает код выхода.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("menuctl", flag.ContinueOnError)
	global.SetOutput(stderr)
	global.Usage = func() { fmt.Fprint(stderr, usage) }

	addr := global.String("addr", envOr("MENU_API_URL", "http://localhost:8080/api"), "API base URL")
	sessionPath := global.String("session", "", "session file (default: user config dir)")
	if err := global.Parse(args); err != nil {
		return 2
	}

	rest := global.Args()
	if len(rest) == 0 {
		global.Usage()
		return 2
	}

	path := *sessionPath
	if path == "" {
		p, err := menuclient.DefaultSessionPath()
		if err != nil {
			fmt.Fprintln(stderr, "error:", err)
			return 1
		}
		path = p
	}

	c := menuclient.New(*addr, menuclient.WithTokenStore(&menuclient.FileStore{Path: path}))

	if err := dispatch(ctx, c, rest[0], rest[1:], stdout, stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) || errors.Is(err, errUsage) {
			return 2
		}
		fmt.Fprintln(stderr, "error:", err)
		if menuclient.IsUnauthorized(err) {
			fmt.Fprintln(stderr, "session cleared; run `menuctl login` again")
		}
		return 1
	}

	return 0
}

var errUsage = errors.New("usage")

func dispatch(ctx context.Context, c *menuclient.Client, cmd string, args []string, stdout, stderr io.Writer) error {
	switch cmd {
	case "login":
		fs := newFlagSet("login", stderr)
		user := fs.String("u", "", "username")
		pass := fs.String("p", "", "password")
		if err := fs.Parse(args); err != nil {
			return err
		}

		res, err := c.Login(ctx, *user, *pass)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "logged in as %s (expires in %ds)\n", res.Username, res.ExpiresIn)
		return nil

	case "logout":
		if err := c.Logout(); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "logged out")
		return nil

	case "whoami":
		sess, err := c.Session()
		if err != nil {
			return err
		}
		valid := c.ValidateToken(ctx, sess.Token)
		fmt.Fprintf(stdout, "%s (token valid: %t)\n", sess.Username, valid)
		return nil

	case "list":
		menus, err := c.List(ctx)
		if err != nil {
			return err
		}
		return printMenus(stdout, menus)

	case "search":
		name := ""
		if len(args) > 0 {
			name = args[0]
		}
		menus, err := c.Search(ctx, name)
		if err != nil {
			return err
		}
		return printMenus(stdout, menus)

	case "get":
		id, err := argID(args, stderr)
		if err != nil {
			return err
		}
		m, err := c.Get(ctx, id)
		if err != nil {
			return err
		}
		return printMenus(stdout, []menuclient.Menu{*m})

	case "create":
		in, err := parseInput("create", args, stderr)
		if err != nil {
			return err
		}
		m, err := c.Create(ctx, in)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "created menu %d\n", m.ID)
		return nil

	case "update":
		id, err := argID(args, stderr)
		if err != nil {
			return err
		}
		in, err := parseInput("update", args[1:], stderr)
		if err != nil {
			return err
		}
		m, err := c.Update(ctx, id, in)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "updated menu %d\n", m.ID)
		return nil

	case "delete":
		id, err := argID(args, stderr)
		if err != nil {
			return err
		}
		if err := c.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "deleted menu %d\n", id)
		return nil

	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", cmd, usage)
		return errUsage
	}
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

// parseInput читает поля меню из флагов. Необязательная descricao отправляется только если задана.
func parseInput(name string, args []string, stderr io.Writer) (menuclient.MenuInput, error) {
	fs := newFlagSet(name, stderr)
	nome := fs.String("nome", "", "menu name")
	ordem := fs.Int("ordem", 0, "display order")
	icone := fs.String("icone", "", "icon")
	descricao := fs.String("descricao", "", "description")
	status := fs.String("status", "", "Ativo or Inativo")
	if err := fs.Parse(args); err != nil {
		return menuclient.MenuInput{}, err
	}

	in := menuclient.MenuInput{
		Name:   *nome,
		Order:  *ordem,
		Icon:   *icone,
		Status: *status,
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "descricao" {
			in.Description = descricao
		}
	})

	return in, nil
}

func argID(args []string, stderr io.Writer) (int64, error) {
	if len(args) == 0 {
		fmt.Fprint(stderr, "missing menu id\n\n", usage)
		return 0, errUsage
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid menu id %q", args[0])
	}

	return id, nil
}

func printMenus(w io.Writer, menus []menuclient.Menu) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tORDEM\tNOME\tICONE\tSTATUS\tDESCRICAO")
	for _, m := range menus {
		desc := ""
		if m.Description != nil {
			desc = *m.Description
		}
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%s\n", m.ID, m.Order, m.Name, m.Icon, m.Status, desc)
	}

	return tw.Flush()
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
