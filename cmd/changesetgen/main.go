// Command changesetgen generates a change set type for a struct whose fields
// carry `col` tags. It is meant to be run through go:generate:
//
//	//go:generate go run ../cmd/changesetgen github.com/medidepot/medidepot/domain.Item
//
// The output is written to <type>_changeset_gen.go in the current directory
// and belongs to the package go generate is running in.
package main

import (
	"fmt"
	"go/types"
	"os"
	"reflect"
	"strings"

	"github.com/dave/jennifer/jen"
	"golang.org/x/tools/go/packages"
)

func main() {
	// Special env variable set by "go generate"
	goPackage := os.Getenv("GOPACKAGE")

	if len(os.Args) != 2 {
		failErr(fmt.Errorf("expected exactly one argument: [source type]"))
	}
	if goPackage == "" {
		failErr(fmt.Errorf("GOPACKAGE is not set, run through go generate"))
	}

	pkgPath, typeName, err := splitSourceType(os.Args[1])
	if err != nil {
		failErr(err)
	}

	cfg := &packages.Config{Mode: packages.NeedName | packages.NeedTypes}
	pkgs, err := packages.Load(cfg, pkgPath)
	if err != nil {
		failErr(fmt.Errorf("loading packages for inspection: %v", err))
	}
	if packages.PrintErrors(pkgs) > 0 {
		os.Exit(1)
	}

	obj := pkgs[0].Types.Scope().Lookup(typeName)
	if obj == nil {
		failErr(fmt.Errorf("%s not found in lookup", typeName))
	}

	f, err := generate(goPackage, obj)
	if err != nil {
		failErr(err)
	}

	target := strings.ToLower(typeName) + "_changeset_gen.go"
	if err := f.Save(target); err != nil {
		failErr(fmt.Errorf("writing %s: %v", target, err))
	}
}

// splitSourceType splits "import/path.Type" at the last dot.
func splitSourceType(sourceType string) (pkgPath, typeName string, err error) {
	idx := strings.LastIndexByte(sourceType, '.')
	if idx <= 0 || idx == len(sourceType)-1 {
		return "", "", fmt.Errorf("source type %q must look like import/path.Type", sourceType)
	}
	return sourceType[:idx], sourceType[idx+1:], nil
}

type column struct {
	field string
	name  string
	typ   types.Type
}

// columns lists the tagged non-key fields of a struct in declaration order.
func columns(structType *types.Struct) []column {
	var cols []column
	for i := 0; i < structType.NumFields(); i++ {
		field := structType.Field(i)
		tag, ok := reflect.StructTag(structType.Tag(i)).Lookup("col")
		if !ok || !field.Exported() {
			continue
		}
		parts := strings.Split(tag, ",")
		name := parts[0]
		if name == "" || name == "-" {
			continue
		}
		isKey := false
		for _, opt := range parts[1:] {
			if opt == "pk" {
				isKey = true
			}
		}
		if isKey {
			continue
		}
		cols = append(cols, column{field: field.Name(), name: name, typ: field.Type()})
	}
	return cols
}

func generate(goPackage string, obj types.Object) (*jen.File, error) {
	if _, ok := obj.(*types.TypeName); !ok {
		return nil, fmt.Errorf("%v is not a named type", obj)
	}
	structType, ok := obj.Type().Underlying().(*types.Struct)
	if !ok {
		return nil, fmt.Errorf("type %v is a %T, not a struct", obj, obj.Type().Underlying())
	}
	cols := columns(structType)
	if len(cols) == 0 {
		return nil, fmt.Errorf("type %v has no col tagged fields", obj)
	}

	changeSetName := obj.Name() + "ChangeSet"

	f := jen.NewFile(goPackage)
	f.HeaderComment("Code generated by changesetgen. DO NOT EDIT.")

	f.Commentf("%s holds the columns of %s to overwrite; nil fields are left untouched.", changeSetName, obj.Name())
	f.Type().Id(changeSetName).StructFunc(func(g *jen.Group) {
		for _, col := range cols {
			g.Id(col.field).Op("*").Add(typeCode(col.typ))
		}
	})
	f.Line()

	f.Func().Params(jen.Id("c").Id(changeSetName)).Id("toMap").Params().Map(jen.String()).Interface().BlockFunc(func(g *jen.Group) {
		g.Id("m").Op(":=").Make(jen.Map(jen.String()).Interface())
		for _, col := range cols {
			g.If(jen.Id("c").Dot(col.field).Op("!=").Nil()).Block(
				jen.Id("m").Index(jen.Lit(col.name)).Op("=").Op("*").Id("c").Dot(col.field),
			)
		}
		g.Return(jen.Id("m"))
	})

	return f, nil
}

func typeCode(t types.Type) jen.Code {
	switch t := t.(type) {
	case *types.Basic:
		return jen.Id(t.Name())
	case *types.Named:
		if t.Obj().Pkg() == nil {
			return jen.Id(t.Obj().Name())
		}
		return jen.Qual(t.Obj().Pkg().Path(), t.Obj().Name())
	case *types.Pointer:
		return jen.Op("*").Add(typeCode(t.Elem()))
	case *types.Slice:
		return jen.Index().Add(typeCode(t.Elem()))
	}
	return jen.Id(t.String())
}

func failErr(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
