package avl

import (
	"fmt"
	"io"
	"strings"
)

// WriteDot outputs the internal structure of a tree in Graphviz DOT format
// (for debugging purposes).
//
// label renders a node's payload; if nil, keys are printed with %v.
func (t *Tree[K, V, A]) WriteDot(w io.Writer, label func(K, V) string) error {
	if label == nil {
		label = func(k K, _ V) string { return fmt.Sprintf("%v", k) }
	}
	var nodelist, edgelist strings.Builder
	if t != nil && t.count > 0 {
		stack := []handle{t.root}
		for len(stack) > 0 {
			h := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			n := &t.nodes[h]
			fmt.Fprintf(&nodelist, "\"%d\" [label=\"%s\\nh=%d n=%d\" %s];\n",
				h, label(n.key, n.value), n.height, n.size, nodeDotStyles(n.height == 0))
			for i, child := range [2]handle{n.left, n.right} {
				if child == nilHandle {
					if n.height > 0 {
						nilid := fmt.Sprintf("nil%d_%d", h, i)
						fmt.Fprintf(&nodelist, "\"%s\" %s;\n", nilid, emptyNode())
						fmt.Fprintf(&edgelist, "\"%d\" -> \"%s\";\n", h, nilid)
					}
					continue
				}
				fmt.Fprintf(&edgelist, "\"%d\" -> \"%d\";\n", h, child)
				stack = append(stack, child)
			}
		}
	}
	var out strings.Builder
	out.WriteString("strict digraph {\n")
	out.WriteString("\tnode [fontname=Arial,fontsize=12];\n")
	out.WriteString(nodelist.String())
	out.WriteString(edgelist.String())
	out.WriteString("}\n")
	_, err := io.WriteString(w, out.String())
	if err != nil {
		T().Errorf("avl DOT: %s", err.Error())
	}
	return err
}

func emptyNode() string {
	return "[label=\"\",color=black,shape=circle,fixedsize=true,width=.2]"
}

func nodeDotStyles(isleaf bool) string {
	s := ",style=filled"
	if isleaf {
		s += ",shape=box"
	} else {
		s += ",color=black,fillcolor=\"#a3d7e4\""
		s += ",shape=circle"
	}
	return s
}
