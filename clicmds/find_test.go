package clicmds_test

import (
	"bytes"
	"io/ioutil"
	"testing"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gitlab.com/elemk/clicmds"
	"gitlab.com/elemk/elemk"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	app := cli.NewApp()
	app.Writer = out
	app.ErrWriter = ioutil.Discard
	app.Commands = clicmds.Commands()
	err := app.Run(append([]string{"elemk"}, args...))
	return out.String(), err
}

func TestFind(t *testing.T) {
	var inputs = []struct {
		name     string
		args     []string
		expected string
	}{
		{"single", []string{"find", "--file", "testdata/list.html", "--query", ".item", "--text", "Apple"}, "0: AppleApple Pie\n"},
		{"all", []string{"findall", "--file", "testdata/list.html", "--query", ".item", "--text", "Apple"}, "0: Apple\n1: Apple Pie\n"},
		{"marker", []string{"fa", "--file", "testdata/list.html", "--query", ".item", "--marker", "banana"}, "0: Banana\n"},
		{"index", []string{"find", "--file", "testdata/list.html", "--query", ".item", "--index", "2"}, "0: Apple Pie\n"},
		{"negative index", []string{"find", "--file", "testdata/list.html", "--query", ".item", "--index=-1"}, "0: Apple Pie\n"},
		{"zero index", []string{"find", "--file", "testdata/list.html", "--query", ".item", "--index", "0"}, "0: Apple\n"},
		{"absent", []string{"find", "--file", "testdata/list.html", "--query", ".item", "--index", "5"}, "no matches\n"},
		{"raw", []string{"findall", "--file", "testdata/list.html", "--query", "li", "--raw"}, "0: Apple\n1: Banana\n2: Apple Pie\n"},
		{"html", []string{"findall", "--file", "testdata/list.html", "--query", ".item", "--marker", "banana", "--html"}, "0: <li class=\"item\" data-marker=\"banana\">Banana</li>\n"},
		{"raw html", []string{"findall", "--file", "testdata/list.html", "--query", ".item", "--index", "0", "--raw", "--html"}, "0: <li class=\"item\">Apple</li>\n"},
		{"config", []string{"findall", "--config", "testdata/static.toml", "--query", ".item", "--index", "1"}, "0: Banana\n"},
		{"component", []string{"find", "--file", "testdata/list.html", "--marker", "fruit", "--component", "testdata/list.js", "--call", "count"}, "0: 3\n"},
		{"component all", []string{"findall", "--file", "testdata/list.html", "--query", ".list", "--component", "testdata/list.js", "--call", "first"}, "0: Apple\n"},
	}

	for _, in := range inputs {
		t.Run(in.name, func(t *testing.T) {
			out, err := runApp(t, in.args...)
			if err != nil {
				t.Fatalf("err: %s\n", err)
			}
			if out != in.expected {
				t.Fatalf("expected %q got %q", in.expected, out)
			}
		})
	}
}

func TestFindErrors(t *testing.T) {
	_, err := runApp(t, "find", "--driver", "selenium", "--file", "testdata/list.html")
	if errors.Cause(err) != elemk.ErrUnknownDriver {
		t.Fatalf("expected unknown driver got %v", err)
	}

	_, err = runApp(t, "find", "--query", "li")
	if !elemk.IsPrecondition(err) {
		t.Fatalf("expected precondition error got %v", err)
	}

	_, err = runApp(t, "find", "--file", "testdata/list.html", "--query", "li", "--css", "[data-x=")
	var qerr *elemk.QueryErr
	if !errors.As(err, &qerr) {
		t.Fatalf("expected query error got %v", err)
	}

	_, err = runApp(t, "find", "--file", "testdata/list.html", "--query", ".list", "--component", "testdata/list.js", "--call", "missing")
	if !elemk.IsMissingMember(err) {
		t.Fatalf("expected missing member got %v", err)
	}
}
