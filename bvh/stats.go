package bvh

import (
	"bytes"
	"fmt"
	"reflect"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// Build a tabular representation of tree statistics.
func (t *FlatBVH) Stats() string {
	var nodes, leafs, maxDepth, maxLeafSize, leafTris int
	var axisSplits [3]int

	type frame struct {
		index uint32
		depth int
	}
	pending := make([]frame, 0, 64)
	if len(t.Nodes) > 0 {
		pending = append(pending, frame{0, 0})
	}

	for len(pending) > 0 {
		cur := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		nodes++
		if cur.depth > maxDepth {
			maxDepth = cur.depth
		}

		node := &t.Nodes[cur.index]
		if node.Leaf() {
			_, count := node.Triangles()
			leafs++
			leafTris += int(count)
			if int(count) > maxLeafSize {
				maxLeafSize = int(count)
			}
			continue
		}

		axisSplits[node.SplitAxis()]++
		pending = append(pending,
			frame{cur.index + 1, cur.depth + 1},
			frame{node.RightChild(), cur.depth + 1},
		)
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Tree", "Value", "Size"})
	table.Append([]string{"Nodes", strconv.Itoa(nodes), fmtSize(t.Nodes)})
	table.Append([]string{"Leafs", strconv.Itoa(leafs), " "})
	table.Append([]string{"Max depth", strconv.Itoa(maxDepth), " "})
	table.Append([]string{"Triangles", strconv.Itoa(leafTris), fmtSize(t.TriIndices)})
	table.Append([]string{"Largest leaf", strconv.Itoa(maxLeafSize), " "})
	table.Append([]string{"Splits (x/y/z)", fmt.Sprintf("%d/%d/%d", axisSplits[0], axisSplits[1], axisSplits[2]), " "})
	table.SetFooter([]string{"Total", " ", fmtSize(t.Nodes, t.TriIndices)})

	table.Render()
	return buf.String()
}

// Sum the total space used by a set of slices and return back a formatted
// value with the appropriate byte/kb/mb unit.
func fmtSize(items ...interface{}) string {
	var totalBytes float32 = 0.0
	for _, item := range items {
		t := reflect.TypeOf(item)
		v := reflect.ValueOf(item)
		if v.Len() == 0 {
			continue
		}

		totalBytes += float32(int(t.Elem().Size()) * v.Len())
	}

	if totalBytes < 1e3 {
		return fmt.Sprintf("%3d bytes", int(totalBytes))
	} else if totalBytes < 1e6 {
		return fmt.Sprintf("%3.1f kb", totalBytes/1e3)
	}
	return fmt.Sprintf("%5.1f mb", totalBytes/1e6)
}
