package table

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// smallTable mirrors a miniature iptables inventory: one aliased type, one
// type with two codes, one type whose only code resolves later.
func smallTable() *Table {
	tbl := New()
	tbl.PutType("echo-request", 8)
	tbl.PutType("unreachable", 3)
	tbl.PutType("dest-unreachable", 3)
	tbl.PutCode("echo-reply", 8, 0)
	tbl.PutCode("net-unreachable", 3, 0)
	tbl.PutCode("host-unreachable", 3, 1)
	return tbl
}

const wantPython = `# icmp.py
# generated by icmpgen
ICMP_TYPE = {}
ICMP_TYPE_CODE = {}
ICMP_TYPE["dest-unreachable"] = 3
ICMP_TYPE["unreachable"] = 3
ICMP_TYPE_CODE["net-unreachable"] = (3, 0,)
ICMP_TYPE_CODE["host-unreachable"] = (3, 1,)
ICMP_TYPE["echo-request"] = 8
ICMP_TYPE_CODE["echo-reply"] = (8, 0,)
`

func TestWritePython(t *testing.T) {
	var buf bytes.Buffer
	err := WritePython(&buf, smallTable(), EmitOptions{Base: "icmp", Invocation: "icmpgen"})
	assert.NoError(t, err)
	assert.Equal(t, wantPython, buf.String())
}

func TestWritePythonTieFavorsType(t *testing.T) {
	tbl := New()
	tbl.PutType("redirect", 5)
	tbl.PutCode("network-redirect", 5, 0)

	var buf bytes.Buffer
	err := WritePython(&buf, tbl, EmitOptions{Base: "icmp", Invocation: "icmpgen"})
	assert.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Equal(t, `ICMP_TYPE["redirect"] = 5`, lines[4])
	assert.Equal(t, `ICMP_TYPE_CODE["network-redirect"] = (5, 0,)`, lines[5])
}

func TestWritePythonEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := WritePython(&buf, New(), EmitOptions{Base: "icmp6", Invocation: "icmpgen"})
	assert.NoError(t, err)
	assert.Equal(t, "# icmp6.py\n# generated by icmpgen\nICMP_TYPE = {}\nICMP_TYPE_CODE = {}\n", buf.String())
}

func TestWritePythonLineCounts(t *testing.T) {
	var buf bytes.Buffer
	err := WritePython(&buf, smallTable(), EmitOptions{Base: "icmp", Invocation: "icmpgen"})
	assert.NoError(t, err)

	types, codes := 0, 0
	for _, line := range strings.Split(buf.String(), "\n") {
		switch {
		case strings.HasPrefix(line, "ICMP_TYPE_CODE["):
			codes++
		case strings.HasPrefix(line, "ICMP_TYPE["):
			types++
		}
	}
	assert.Equal(t, 3, types)
	assert.Equal(t, 3, codes)
}

const wantGo = `// Code generated by icmpgen; DO NOT EDIT.

package icmp

// TypeByName maps accepted type names to their numeric ICMP type.
// Aliases share the value of their canonical name.
var TypeByName = map[string]uint8{
	"dest-unreachable": 3,
	"unreachable":      3,
	"echo-request":     8,
}

// CodeByName maps accepted code names to their numeric ICMP type and
// code pair.
var CodeByName = map[string][2]uint8{
	"net-unreachable":  {3, 0},
	"host-unreachable": {3, 1},
	"echo-reply":       {8, 0},
}
`

func TestWriteGo(t *testing.T) {
	var buf bytes.Buffer
	err := WriteGo(&buf, smallTable(), EmitOptions{Base: "icmp", Invocation: "icmpgen"})
	assert.NoError(t, err)
	assert.Equal(t, wantGo, buf.String())
}

func TestWriteGoEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := WriteGo(&buf, New(), EmitOptions{Base: "icmp6", Invocation: "icmpgen"})
	assert.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "package icmp6\n")
	assert.Contains(t, out, "var TypeByName = map[string]uint8{}\n")
	assert.Contains(t, out, "var CodeByName = map[string][2]uint8{}\n")
}
