// Command vsdb is a small operator CLI over a vsdb store file: get, set,
// glob, sync, and msgpack dump/import (SPEC_FULL.md §6.5). Modeled on
// nspcc-dev/neo-go's cli/util commands, another tool in this corpus that
// drives a bbolt-backed store from the command line with urfave/cli.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli"
	"go.uber.org/zap"

	"github.com/lembacon/vsdb"
	"github.com/lembacon/vsdb/value"
)

func main() {
	app := cli.NewApp()
	app.Name = "vsdb"
	app.Usage = "inspect and edit a vsdb key-value store"
	app.Commands = []cli.Command{
		{Name: "get", Usage: "get <path> <key>", Action: cmdGet},
		{Name: "set", Usage: "set <path> <key> <json-value>", Action: cmdSet},
		{Name: "del", Usage: "del <path> <key>", Action: cmdDel},
		{Name: "glob", Usage: "glob <path> <pattern>", Action: cmdGlob},
		{Name: "sync", Usage: "sync <path>", Action: cmdSync},
		{Name: "dump", Usage: "dump <path> <out.msgpack>", Action: cmdDump},
		{Name: "import", Usage: "import <path> <in.msgpack>", Action: cmdImport},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openStore(ctx *cli.Context, n int) (*vsdb.Store, []string, error) {
	args := []string(ctx.Args())
	if len(args) < n {
		return nil, nil, cli.NewExitError(fmt.Sprintf("%s: expected %d argument(s)", ctx.Command.Name, n), 1)
	}
	logger, _ := zap.NewDevelopment()
	s, ok := vsdb.Open(args[0], vsdb.Options{Logger: logger})
	if !ok {
		return nil, nil, cli.NewExitError(fmt.Sprintf("failed to open %q", args[0]), 1)
	}
	return s, args[1:], nil
}

func cmdGet(ctx *cli.Context) error {
	s, rest, err := openStore(ctx, 2)
	if err != nil {
		return err
	}
	defer s.Close()

	v, ok := s.CopyValue(rest[0])
	if !ok {
		return cli.NewExitError("key not found", 1)
	}
	return printJSON(ctx, v)
}

func cmdSet(ctx *cli.Context) error {
	s, rest, err := openStore(ctx, 3)
	if err != nil {
		return err
	}
	defer s.Close()

	v, err := parseJSONValue(rest[1])
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	s.SetValue(rest[0], v, true)
	return nil
}

func cmdDel(ctx *cli.Context) error {
	s, rest, err := openStore(ctx, 2)
	if err != nil {
		return err
	}
	defer s.Close()

	s.SetValue(rest[0], value.Value{}, false)
	return nil
}

func cmdGlob(ctx *cli.Context) error {
	s, rest, err := openStore(ctx, 2)
	if err != nil {
		return err
	}
	defer s.Close()

	v, ok := s.CopyValue(rest[0])
	if !ok {
		return cli.NewExitError("glob failed", 1)
	}
	return printJSON(ctx, v)
}

func cmdSync(ctx *cli.Context) error {
	s, _, err := openStore(ctx, 1)
	if err != nil {
		return err
	}
	defer s.Close()

	if !s.Sync() {
		return cli.NewExitError("sync failed", 1)
	}
	return nil
}

func cmdDump(ctx *cli.Context) error {
	s, rest, err := openStore(ctx, 2)
	if err != nil {
		return err
	}
	defer s.Close()

	f, err := os.Create(rest[0])
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer f.Close()

	if !s.Export(f, "*") {
		return cli.NewExitError("dump failed", 1)
	}
	return nil
}

func cmdImport(ctx *cli.Context) error {
	s, rest, err := openStore(ctx, 2)
	if err != nil {
		return err
	}
	defer s.Close()

	f, err := os.Open(rest[0])
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer f.Close()

	if !s.Import(f) {
		return cli.NewExitError("import failed", 1)
	}
	return nil
}

func printJSON(ctx *cli.Context, v value.Value) error {
	raw, err := json.MarshalIndent(jsonify(v), "", "  ")
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	fmt.Fprintln(ctx.App.Writer, string(raw))
	return nil
}

// jsonify renders a value.Value as a plain any for display purposes
// only; it is lossy (Set and Array both become JSON arrays, Data becomes
// a base64 string) and is never used to round-trip data.
func jsonify(v value.Value) any {
	switch v.Tag {
	case value.TagString:
		return v.Str
	case value.TagData:
		return v.Bytes
	case value.TagIntegerLL:
		return v.Int
	case value.TagDouble:
		return v.Num
	case value.TagBoolTrue:
		return true
	case value.TagBoolFalse:
		return false
	case value.TagDate:
		return v.Num
	case value.TagDictionary:
		m := make(map[string]any, len(v.Dict))
		for _, e := range v.Dict {
			m[e.Key] = jsonify(e.Value)
		}
		return m
	case value.TagArray, value.TagSet:
		items := make([]any, 0, len(v.Items))
		for _, item := range v.Items {
			items = append(items, jsonify(item))
		}
		return items
	default:
		return nil
	}
}

// parseJSONValue maps a JSON literal onto a value.Value for ergonomic
// CLI input (SPEC_FULL.md §6.5): JSON has no Data/Date/Set variants, so
// those can't be produced this way — use Import for those.
func parseJSONValue(raw string) (value.Value, error) {
	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return value.Value{}, fmt.Errorf("invalid JSON value: %w", err)
	}
	return fromJSON(decoded), nil
}

func fromJSON(v any) value.Value {
	switch x := v.(type) {
	case nil:
		return value.Null()
	case bool:
		return value.Bool(x)
	case float64:
		if x == float64(int64(x)) {
			return value.Integer(int64(x))
		}
		return value.Double(x)
	case string:
		return value.String(x)
	case []any:
		items := make([]value.Value, 0, len(x))
		for _, item := range x {
			items = append(items, fromJSON(item))
		}
		return value.Array(items...)
	case map[string]any:
		entries := make([]value.DictEntry, 0, len(x))
		for k, val := range x {
			entries = append(entries, value.DictEntry{Key: k, Value: fromJSON(val)})
		}
		return value.Dictionary(entries...)
	default:
		return value.Null()
	}
}
