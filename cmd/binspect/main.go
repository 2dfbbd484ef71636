// Command binspect decodes a binary file against a TOML layout description
// and prints the decoded fields. It is a diagnostic harness for the binrw
// runtime, not a schema compiler: the layout is interpreted, not compiled.
//
// Layout example:
//
//	order = "big"
//
//	[[field]]
//	name  = "signature"
//	type  = "u16"
//	magic = 0x8950
//
//	[[field]]
//	name  = "count"
//	type  = "u8"
//
//	[[field]]
//	name       = "entries"
//	type       = "u16"
//	count_from = "count"
//	order      = "little"
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"

	"github.com/kitlith/binrw"
)

type layout struct {
	Order  string  `toml:"order"`
	Fields []field `toml:"field"`
}

type field struct {
	Name      string `toml:"name"`
	Type      string `toml:"type"`
	Order     string `toml:"order"`
	Magic     *int64 `toml:"magic"`
	Count     *int   `toml:"count"`
	CountFrom string `toml:"count_from"`
}

type cli struct {
	Layout string `arg:"" type:"existingfile" help:"TOML layout description."`
	File   string `arg:"" type:"existingfile" help:"Binary file to decode."`
	Trace  bool   `help:"Log per-field read diagnostics to stderr."`
}

func main() {
	var args cli
	kctx := kong.Parse(&args,
		kong.Name("binspect"),
		kong.Description("Decode a binary file against a TOML layout description."))
	kctx.FatalIfErrorf(run(args))
}

func run(args cli) error {
	var lay layout
	if _, err := toml.DecodeFile(args.Layout, &lay); err != nil {
		return fmt.Errorf("parsing layout: %w", err)
	}

	f, err := os.Open(args.File)
	if err != nil {
		return err
	}
	defer f.Close()

	order, err := parseOrder(lay.Order)
	if err != nil {
		return err
	}

	ctx := binrw.NewContext().WithOrder(order)
	if args.Trace {
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.DebugLevel)
		ctx = ctx.WithTrace(&logger)
	}

	return decode(os.Stdout, f, ctx, lay)
}

func decode(out io.Writer, r io.ReadSeeker, ctx binrw.Context, lay layout) error {
	rec := binrw.NewRecord(r, ctx)

	// Decoded integer values by name, for count_from references.
	scalars := make(map[string]int64)

	for _, fld := range lay.Fields {
		var opts []binrw.FieldOption
		if fld.Order != "" {
			order, err := parseOrder(fld.Order)
			if err != nil {
				return fmt.Errorf("field %q: %w", fld.Name, err)
			}
			opts = append(opts, binrw.FieldOrder(order))
		}

		// A declared count of 0 still means "a run", not a scalar.
		var count int
		hasCount := false
		if fld.Count != nil {
			count = *fld.Count
			hasCount = true
		}
		if fld.CountFrom != "" {
			n, ok := scalars[fld.CountFrom]
			if !ok {
				return fmt.Errorf("field %q: count_from refers to unknown field %q", fld.Name, fld.CountFrom)
			}
			count = int(n)
			hasCount = true
		}

		if fld.Magic != nil {
			if err := checkMagic(rec, fld, opts); err != nil {
				return err
			}
			fmt.Fprintf(out, "%-16s = 0x%x (magic ok)\n", fld.Name, *fld.Magic)
			continue
		}

		v, err := readScalarOrRun(rec, fld.Type, count, hasCount, opts)
		if err != nil {
			return fmt.Errorf("field %q: %w", fld.Name, err)
		}
		if n, ok := v.(int64); ok {
			scalars[fld.Name] = n
		}
		fmt.Fprintf(out, "%-16s = %v\n", fld.Name, v)
	}

	return rec.Resolve(r)
}

func checkMagic(rec *binrw.Record, fld field, opts []binrw.FieldOption) error {
	switch fld.Type {
	case "u8":
		return binrw.Magic(rec, binrw.U8(*fld.Magic), binrw.None{}, opts...)
	case "u16":
		return binrw.Magic(rec, binrw.U16(*fld.Magic), binrw.None{}, opts...)
	case "u32":
		return binrw.Magic(rec, binrw.U32(*fld.Magic), binrw.None{}, opts...)
	case "u64":
		return binrw.Magic(rec, binrw.U64(*fld.Magic), binrw.None{}, opts...)
	default:
		return fmt.Errorf("field %q: magic unsupported for type %q", fld.Name, fld.Type)
	}
}

// readScalarOrRun decodes one field. Integer fields come back as int64 so
// later fields can reference them as counts; counted fields come back as
// printable slices.
func readScalarOrRun(rec *binrw.Record, typ string, count int, hasCount bool, opts []binrw.FieldOption) (any, error) {
	if hasCount {
		return readRun(rec, typ, count, opts)
	}

	switch typ {
	case "u8":
		var v binrw.U8
		err := binrw.ReadField(rec, &v, binrw.None{}, opts...)
		return int64(v), err
	case "u16":
		var v binrw.U16
		err := binrw.ReadField(rec, &v, binrw.None{}, opts...)
		return int64(v), err
	case "u32":
		var v binrw.U32
		err := binrw.ReadField(rec, &v, binrw.None{}, opts...)
		return int64(v), err
	case "u64":
		var v binrw.U64
		err := binrw.ReadField(rec, &v, binrw.None{}, opts...)
		return int64(v), err
	case "i8":
		var v binrw.I8
		err := binrw.ReadField(rec, &v, binrw.None{}, opts...)
		return int64(v), err
	case "i16":
		var v binrw.I16
		err := binrw.ReadField(rec, &v, binrw.None{}, opts...)
		return int64(v), err
	case "i32":
		var v binrw.I32
		err := binrw.ReadField(rec, &v, binrw.None{}, opts...)
		return int64(v), err
	case "i64":
		var v binrw.I64
		err := binrw.ReadField(rec, &v, binrw.None{}, opts...)
		return int64(v), err
	case "f32":
		var v binrw.F32
		err := binrw.ReadField(rec, &v, binrw.None{}, opts...)
		return float64(v), err
	case "f64":
		var v binrw.F64
		err := binrw.ReadField(rec, &v, binrw.None{}, opts...)
		return float64(v), err
	case "char":
		var v binrw.Char
		err := binrw.ReadField(rec, &v, binrw.None{}, opts...)
		return string(rune(v)), err
	default:
		return nil, fmt.Errorf("unknown type %q", typ)
	}
}

func readRun(rec *binrw.Record, typ string, count int, opts []binrw.FieldOption) (any, error) {
	switch typ {
	case "u8":
		var c binrw.Counted[binrw.U8, binrw.None, *binrw.U8]
		err := binrw.ReadField(rec, &c, binrw.Args(count), opts...)
		return c.Items, err
	case "u16":
		var c binrw.Counted[binrw.U16, binrw.None, *binrw.U16]
		err := binrw.ReadField(rec, &c, binrw.Args(count), opts...)
		return c.Items, err
	case "u32":
		var c binrw.Counted[binrw.U32, binrw.None, *binrw.U32]
		err := binrw.ReadField(rec, &c, binrw.Args(count), opts...)
		return c.Items, err
	case "char":
		var c binrw.Counted[binrw.Char, binrw.None, *binrw.Char]
		err := binrw.ReadField(rec, &c, binrw.Args(count), opts...)
		var b strings.Builder
		for _, ch := range c.Items {
			b.WriteRune(rune(ch))
		}
		return b.String(), err
	default:
		return nil, fmt.Errorf("counted runs unsupported for type %q", typ)
	}
}

func parseOrder(s string) (binrw.Endian, error) {
	switch s {
	case "big":
		return binrw.BigEndian, nil
	case "little":
		return binrw.LittleEndian, nil
	case "", "native":
		return binrw.NativeEndian, nil
	default:
		return binrw.NativeEndian, fmt.Errorf("unknown byte order %q", s)
	}
}
