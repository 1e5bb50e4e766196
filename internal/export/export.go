// Package export serializes BDDs and parse trees for inspection: GraphViz
// dot, the AUT graph format readable by the nd tool, truth tables, and
// model listings. It is ordinary client code of the root package's public
// Set API (Allnodes, Low, High, Satcount, Allsat) since it lives outside
// that package and has no access to store internals.
package export

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dalzilio/symlogic"
	"github.com/dalzilio/symlogic/internal/ast"
)

type nodeRec struct {
	id, level, low, high int
}

func collect(b symlogic.Set, roots ...symlogic.Node) ([]nodeRec, error) {
	var recs []nodeRec
	err := b.Allnodes(func(id, level, low, high int) error {
		recs = append(recs, nodeRec{id, level, low, high})
		return nil
	}, roots...)
	if err != nil {
		return nil, err
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].id < recs[j].id })
	return recs, nil
}

// Dot writes a GraphViz dot description of the BDD reachable from roots, or
// of every active node if roots is empty. Arcs to the constant false are
// omitted (unlike Aut, which lists them).
func Dot(b symlogic.Set, w io.Writer, roots ...symlogic.Node) error {
	recs, err := collect(b, roots...)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph G {")
	fmt.Fprintln(bw, `1 [shape=box, label="1", style=filled, height=0.3, width=0.3];`)
	for _, r := range recs {
		if r.id <= 1 {
			continue
		}
		fmt.Fprintf(bw, "%d %s\n", r.id, dotlabel(r.id, r.level))
		if r.low != 0 {
			fmt.Fprintf(bw, "%d -> %d [style=dotted];\n", r.id, r.low)
		}
		if r.high != 0 {
			fmt.Fprintf(bw, "%d -> %d [style=filled];\n", r.id, r.high)
		}
	}
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}

func dotlabel(id, level int) string {
	return fmt.Sprintf(`[label=<
	<FONT POINT-SIZE="20">%d</FONT>
	<FONT POINT-SIZE="10">[%d]</FONT>
>];`, level, id)
}

// Aut writes the AUT graph-format description of the BDD reachable from
// roots, or of every active node if roots is empty. The resulting file can
// be displayed with the nd tool.
func Aut(b symlogic.Set, w io.Writer, roots ...symlogic.Node) error {
	recs, err := collect(b, roots...)
	if err != nil {
		return err
	}
	compact := make(map[int]int, len(recs))
	counter := 2
	for _, r := range recs {
		if r.id <= 1 {
			compact[r.id] = r.id
			continue
		}
		compact[r.id] = counter
		counter++
	}
	bw := bufio.NewWriter(w)
	n := len(recs)
	fmt.Fprintf(bw, "des(0,%d,%d)\n", 3*n-4, n)
	fmt.Fprintln(bw, `(0, "S.`+"`False`"+`", 0)`)
	fmt.Fprintln(bw, `(1, "S.`+"`True`"+`", 1)`)
	for _, r := range recs {
		if r.id <= 1 {
			continue
		}
		v := compact[r.id]
		fmt.Fprintf(bw, "(%d, \"S.`%d`\", %d)\n", v, r.level, v)
		fmt.Fprintf(bw, "(%d, \"E.`0`\", %d)\n", v, compact[r.low])
		fmt.Fprintf(bw, "(%d, \"E.`1`\", %d)\n", v, compact[r.high])
	}
	return bw.Flush()
}

// Models writes one line per satisfying assignment of n, using names for
// variable labels in index order. An entry is "name", "!name", or omitted
// (don't-care) following the -1/0/1 encoding returned by Allsat.
func Models(b symlogic.Set, w io.Writer, n symlogic.Node, names []string) error {
	bw := bufio.NewWriter(w)
	count := 0
	err := b.Allsat(n, func(assign []int) error {
		var parts []string
		for i, v := range assign {
			name := fmt.Sprintf("v%d", i)
			if i < len(names) {
				name = names[i]
			}
			switch v {
			case 1:
				parts = append(parts, name)
			case 0:
				parts = append(parts, "!"+name)
			}
		}
		count++
		fmt.Fprintln(bw, strings.Join(parts, " & "))
		return nil
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(bw, "%d satisfying assignment(s)\n", count)
	return bw.Flush()
}

// TruthTable writes a row per satisfying assignment, one column per name,
// with "-" for a don't-care position.
func TruthTable(b symlogic.Set, w io.Writer, n symlogic.Node, names []string) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, strings.Join(names, "\t"))
	err := b.Allsat(n, func(assign []int) error {
		cols := make([]string, len(names))
		for i := range names {
			cols[i] = "-"
			if i < len(assign) {
				switch assign[i] {
				case 0:
					cols[i] = "0"
				case 1:
					cols[i] = "1"
				}
			}
		}
		fmt.Fprintln(bw, strings.Join(cols, "\t"))
		return nil
	})
	if err != nil {
		return err
	}
	return bw.Flush()
}

// ParseTreeDot writes a GraphViz dot description of a parsed expression
// tree, for debugging the parser independently of the BDD it compiles to.
func ParseTreeDot(w io.Writer, root *ast.Node) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph G {")
	counter := 0
	var walk func(n *ast.Node) int
	walk = func(n *ast.Node) int {
		id := counter
		counter++
		fmt.Fprintf(bw, "%d [label=%q];\n", id, nodeLabel(n))
		for _, c := range n.Children() {
			cid := walk(c)
			fmt.Fprintf(bw, "%d -> %d;\n", id, cid)
		}
		return id
	}
	walk(root)
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}

func nodeLabel(n *ast.Node) string {
	switch n.Kind {
	case ast.KindTrue:
		return "true"
	case ast.KindFalse:
		return "false"
	case ast.KindVar:
		return n.Name
	case ast.KindNot:
		return "not"
	case ast.KindBinOp:
		return n.Op.String()
	case ast.KindIte:
		return "if-then-else"
	case ast.KindQuant:
		return fmt.Sprintf("%s %s", n.Quant, strings.Join(n.Vars, ","))
	case ast.KindCard:
		return fmt.Sprintf("card %s", n.Cmp)
	case ast.KindFix:
		return fmt.Sprintf("%s %s", n.Fix, n.FixVar)
	}
	return n.Kind.String()
}
