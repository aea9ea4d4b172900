package resolve

import (
	"bytes"
	"context"
	"go/ast"
	"go/doc"
	"go/format"
	"go/token"
	"strings"
	"sync"

	"golang.org/x/tools/go/packages"
)

// PackageResolver resolves dotted names against live Go packages: the
// longest resolvable prefix (dots mapped to path separators) loads as a
// package, and the remaining components walk symbols and methods. It backs
// the "running environment" flavor of the importable-namespace contract.
//
// "math.Sqrt" resolves the math package and its Sqrt function;
// "net.http.Client.Do" resolves net/http, type Client, method Do.
type PackageResolver struct {
	// Dir is the directory package patterns are resolved relative to.
	// Empty means the process working directory.
	Dir string

	mu    sync.Mutex
	cache map[string]*loadedPackage
}

// loadedPackage is one entry of the append-only import cache.
type loadedPackage struct {
	docPkg *doc.Package
	fset   *token.FileSet
	err    error
}

// NewPackageResolver creates a PackageResolver rooted at dir.
func NewPackageResolver(dir string) *PackageResolver {
	return &PackageResolver{Dir: dir, cache: make(map[string]*loadedPackage)}
}

// Resolve implements Resolver.
func (r *PackageResolver) Resolve(ctx context.Context, dotted string) (*Object, error) {
	if dotted == "" {
		return nil, notFound(dotted, "empty name")
	}

	components := strings.Split(dotted, ".")
	var lastErr error
	for cut := len(components); cut > 0; cut-- {
		pkgPath := strings.Join(components[:cut], "/")
		loaded := r.load(ctx, pkgPath)
		if loaded.err != nil {
			lastErr = loaded.err
			continue
		}
		obj, err := r.lookup(dotted, loaded, components[cut:])
		if err != nil {
			return nil, err
		}
		return obj, nil
	}
	return nil, &ResolutionError{Name: dotted, Reason: "no package matches any prefix", Err: lastErr}
}

// load fetches a package by import path, consulting the cache first.
// The cache is append-only: failures are cached too, so a missing package
// is probed at most once per resolver lifetime.
func (r *PackageResolver) load(ctx context.Context, pkgPath string) *loadedPackage {
	r.mu.Lock()
	if cached, ok := r.cache[pkgPath]; ok {
		r.mu.Unlock()
		return cached
	}
	r.mu.Unlock()

	loaded := r.loadUncached(ctx, pkgPath)

	r.mu.Lock()
	r.cache[pkgPath] = loaded
	r.mu.Unlock()
	return loaded
}

func (r *PackageResolver) loadUncached(ctx context.Context, pkgPath string) *loadedPackage {
	cfg := &packages.Config{
		Context: ctx,
		Dir:     r.Dir,
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles |
			packages.NeedSyntax | packages.NeedTypes,
	}
	pkgs, err := packages.Load(cfg, pkgPath)
	if err != nil {
		return &loadedPackage{err: err}
	}
	if len(pkgs) == 0 {
		return &loadedPackage{err: notFound(pkgPath, "no Go packages matched")}
	}
	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		return &loadedPackage{err: notFound(pkgPath, "load error: %s", pkg.Errors[0].Msg)}
	}
	docPkg, err := doc.NewFromFiles(pkg.Fset, pkg.Syntax, pkg.PkgPath, doc.Mode(0))
	if err != nil {
		return &loadedPackage{err: err}
	}
	return &loadedPackage{docPkg: docPkg, fset: pkg.Fset}
}

// lookup walks the post-package components through the package's symbols.
func (r *PackageResolver) lookup(dotted string, loaded *loadedPackage, rest []string) (*Object, error) {
	docPkg := loaded.docPkg

	switch len(rest) {
	case 0:
		return r.packageObject(dotted, loaded), nil

	case 1:
		if fn := findFunc(docPkg.Funcs, rest[0]); fn != nil {
			return r.funcObject(dotted, loaded, fn), nil
		}
		if typ := findType(docPkg.Types, rest[0]); typ != nil {
			return r.typeObject(dotted, loaded, typ), nil
		}
		return nil, notFound(dotted, "package %s has no symbol %q", docPkg.ImportPath, rest[0])

	case 2:
		typ := findType(docPkg.Types, rest[0])
		if typ == nil {
			return nil, notFound(dotted, "package %s has no type %q", docPkg.ImportPath, rest[0])
		}
		if fn := findFunc(typ.Methods, rest[1]); fn != nil {
			return r.funcObject(dotted, loaded, fn), nil
		}
		if fn := findFunc(typ.Funcs, rest[1]); fn != nil {
			return r.funcObject(dotted, loaded, fn), nil
		}
		return nil, notFound(dotted, "type %s has no method %q", rest[0], rest[1])

	default:
		return nil, notFound(dotted, "too many components after type %q", rest[0])
	}
}

func (r *PackageResolver) packageObject(dotted string, loaded *loadedPackage) *Object {
	docPkg := loaded.docPkg
	obj := &Object{
		Name: dotted,
		Kind: KindModule,
		Doc:  strings.TrimRight(docPkg.Doc, "\n"),
	}
	for _, fn := range docPkg.Funcs {
		obj.Members = append(obj.Members, Member{
			Name:      fn.Name,
			Kind:      KindFunction,
			Doc:       strings.TrimRight(fn.Doc, "\n"),
			Signature: r.signature(loaded, fn.Decl),
		})
	}
	for _, typ := range docPkg.Types {
		obj.Members = append(obj.Members, Member{
			Name: typ.Name,
			Kind: KindClass,
			Doc:  strings.TrimRight(typ.Doc, "\n"),
		})
	}
	obj.Members = DedupMembers(obj.Members)
	return obj
}

func (r *PackageResolver) funcObject(dotted string, loaded *loadedPackage, fn *doc.Func) *Object {
	return &Object{
		Name:      dotted,
		Kind:      KindFunction,
		Doc:       strings.TrimRight(fn.Doc, "\n"),
		Signature: r.signature(loaded, fn.Decl),
	}
}

func (r *PackageResolver) typeObject(dotted string, loaded *loadedPackage, typ *doc.Type) *Object {
	obj := &Object{
		Name: dotted,
		Kind: KindClass,
		Doc:  strings.TrimRight(typ.Doc, "\n"),
	}
	for _, fn := range append(append([]*doc.Func{}, typ.Funcs...), typ.Methods...) {
		obj.Members = append(obj.Members, Member{
			Name:      fn.Name,
			Kind:      KindFunction,
			Doc:       strings.TrimRight(fn.Doc, "\n"),
			Signature: r.signature(loaded, fn.Decl),
		})
	}
	obj.Members = DedupMembers(obj.Members)
	return obj
}

// signature renders a function declaration as a single-line signature,
// receiver included for methods.
func (r *PackageResolver) signature(loaded *loadedPackage, decl *ast.FuncDecl) string {
	if decl == nil || decl.Type == nil {
		return ""
	}
	var buf bytes.Buffer
	buf.WriteString("func ")
	if decl.Recv != nil && len(decl.Recv.List) > 0 {
		field := decl.Recv.List[0]
		var recv bytes.Buffer
		if len(field.Names) > 0 {
			recv.WriteString(field.Names[0].Name)
			recv.WriteString(" ")
		}
		_ = format.Node(&recv, loaded.fset, field.Type)
		buf.WriteString("(")
		buf.WriteString(recv.String())
		buf.WriteString(") ")
	}
	buf.WriteString(decl.Name.Name)
	var typ bytes.Buffer
	_ = format.Node(&typ, loaded.fset, decl.Type)
	sig := strings.TrimPrefix(typ.String(), "func")
	buf.WriteString(strings.TrimSpace(sig))
	return strings.Join(strings.Fields(buf.String()), " ")
}

func findFunc(funcs []*doc.Func, name string) *doc.Func {
	for _, fn := range funcs {
		if fn.Name == name {
			return fn
		}
	}
	return nil
}

func findType(types []*doc.Type, name string) *doc.Type {
	for _, typ := range types {
		if typ.Name == name {
			return typ
		}
	}
	return nil
}
