package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/matzehuels/netgraph/pkg/errors"
	"github.com/matzehuels/netgraph/pkg/netgraph"
	"github.com/matzehuels/netgraph/pkg/session"
)

// errQuit is returned by the quit command.
var errQuit = stderrors.New("quit")

// editor executes the commands typed at the edit prompt against a session.
type editor struct {
	s      *session.Session
	colour netgraph.Colour // for add without a colour
	shape  netgraph.Shape  // for add without a shape
}

type editCommand struct {
	args     string // usage after the command name
	help     string
	min, max int
	run      func(ctx context.Context, e *editor, args []string) (string, error)
}

var editCommands = map[string]editCommand{
	"add": {"NAME [COLOUR] [SHAPE]", "add a node", 1, 3, func(ctx context.Context, e *editor, a []string) (string, error) {
		return e.add(ctx, a)
	}},
	"addfrom": {"FROM NAME [MESSAGE]", "add a node linked from FROM", 2, 3, func(ctx context.Context, e *editor, a []string) (string, error) {
		spec := session.NodeSpec{Name: a[1], Colour: e.colour, Shape: e.shape, LinkedFrom: a[0], Message: optional(a, 2)}
		return "added " + a[1], e.s.AddNode(ctx, spec)
	}},
	"rename": {"OLD NEW", "rename a node", 2, 2, func(ctx context.Context, e *editor, a []string) (string, error) {
		return "renamed " + a[0] + " " + iconArrow + " " + a[1], e.s.RenameNode(ctx, a[0], a[1])
	}},
	"colour": {"NAME COLOUR", "change a node's colour", 2, 2, func(ctx context.Context, e *editor, a []string) (string, error) {
		c, err := netgraph.ParseColour(a[1])
		if err != nil {
			return "", err
		}
		return e.restyle(ctx, a[0], func(n *netgraph.Node) { n.Colour = c })
	}},
	"shape": {"NAME SHAPE", "change a node's shape", 2, 2, func(ctx context.Context, e *editor, a []string) (string, error) {
		sh, err := netgraph.ParseShape(a[1])
		if err != nil {
			return "", err
		}
		return e.restyle(ctx, a[0], func(n *netgraph.Node) { n.Shape = sh })
	}},
	"notes": {"NAME [TEXT]", "replace a node's notes", 1, 2, func(ctx context.Context, e *editor, a []string) (string, error) {
		return e.restyle(ctx, a[0], func(n *netgraph.Node) { n.Notes = optional(a, 1) })
	}},
	"delete": {"NAME", "delete a node and its links", 1, 1, func(ctx context.Context, e *editor, a []string) (string, error) {
		return "deleted " + a[0], e.s.DeleteNode(ctx, a[0])
	}},
	"link": {"A B [MESSAGE]", "link two nodes", 2, 3, func(ctx context.Context, e *editor, a []string) (string, error) {
		return "linked " + a[0] + " " + iconLink + " " + a[1], e.s.AddLink(ctx, a[0], a[1], optional(a, 2))
	}},
	"relink": {"A B MESSAGE", "change a link's message", 3, 3, func(ctx context.Context, e *editor, a []string) (string, error) {
		return "updated " + a[0] + " " + iconLink + " " + a[1], e.s.EditLink(ctx, a[0], a[1], a[2])
	}},
	"unlink": {"A B", "remove a link", 2, 2, func(ctx context.Context, e *editor, a []string) (string, error) {
		return "unlinked " + a[0] + " " + iconLink + " " + a[1], e.s.RemoveLink(ctx, a[0], a[1])
	}},
	"undo": {"", "undo the last edit (ctrl+z)", 0, 0, func(ctx context.Context, e *editor, _ []string) (string, error) {
		return historyStep(e.s.Undo(ctx))("undo")
	}},
	"redo": {"", "redo the last undone edit (ctrl+y)", 0, 0, func(ctx context.Context, e *editor, _ []string) (string, error) {
		return historyStep(e.s.Redo(ctx))("redo")
	}},
	"quit": {"", "leave the editor", 0, 0, func(context.Context, *editor, []string) (string, error) {
		return "", errQuit
	}},
}

// exec runs one command line and returns a short status message.
func (e *editor) exec(ctx context.Context, line string) (string, error) {
	args, err := splitArgs(line)
	if err != nil {
		return "", err
	}
	if len(args) == 0 {
		return "", nil
	}
	name := strings.ToLower(args[0])
	if name == "help" {
		return editHelp(), nil
	}
	cmd, ok := editCommands[name]
	if !ok {
		return "", errors.New(errors.ErrCodeInvalidInput, "unknown command %q (try help)", args[0])
	}
	args = args[1:]
	if len(args) < cmd.min || len(args) > cmd.max {
		return "", errors.New(errors.ErrCodeInvalidInput, "usage: %s %s", name, cmd.args)
	}
	msg, err := cmd.run(ctx, e, args)
	if err != nil {
		return "", err
	}
	return msg, nil
}

func (e *editor) add(ctx context.Context, a []string) (string, error) {
	spec := session.NodeSpec{Name: a[0], Colour: e.colour, Shape: e.shape}
	if len(a) > 1 {
		c, err := netgraph.ParseColour(a[1])
		if err != nil {
			return "", err
		}
		spec.Colour = c
	}
	if len(a) > 2 {
		sh, err := netgraph.ParseShape(a[2])
		if err != nil {
			return "", err
		}
		spec.Shape = sh
	}
	return "added " + strings.TrimSpace(a[0]), e.s.AddNode(ctx, spec)
}

// restyle edits one attribute of a node, keeping the others.
func (e *editor) restyle(ctx context.Context, name string, change func(*netgraph.Node)) (string, error) {
	n, err := e.s.Store.Node(name)
	if err != nil {
		return "", err
	}
	next := *n
	change(&next)
	return "updated " + n.Name, e.s.EditNode(ctx, n.Name, next.Colour, next.Shape, next.Notes)
}

func historyStep(ok bool, err error) func(string) (string, error) {
	return func(op string) (string, error) {
		switch {
		case err != nil:
			return "", err
		case !ok:
			return "nothing to " + op, nil
		}
		return op + " done", nil
	}
}

func optional(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

// editHelp lists the editor commands in alphabetical order.
func editHelp() string {
	names := make([]string, 0, len(editCommands))
	for name := range editCommands {
		names = append(names, name)
	}
	slices.Sort(names)

	var b strings.Builder
	for _, name := range names {
		cmd := editCommands[name]
		fmt.Fprintf(&b, "%-28s %s\n", strings.TrimSpace(name+" "+cmd.args), cmd.help)
	}
	return strings.TrimRight(b.String(), "\n")
}

// splitArgs splits a command line on whitespace. Double or single quotes
// group words, so names and messages may contain spaces.
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		quote   rune
		inToken bool
	)
	for _, r := range line {
		switch {
		case quote != 0 && r == quote:
			quote = 0
		case quote != 0:
			cur.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
			inToken = true
		case unicode.IsSpace(r):
			if inToken {
				args = append(args, cur.String())
				cur.Reset()
				inToken = false
			}
		default:
			cur.WriteRune(r)
			inToken = true
		}
	}
	if quote != 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unterminated %c quote", quote)
	}
	if inToken {
		args = append(args, cur.String())
	}
	return args, nil
}
