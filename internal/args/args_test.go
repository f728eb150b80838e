package args

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/reports-import/internal/usage"
)

func TestParse(t *testing.T) {
	t.Run("key value pairs", func(t *testing.T) {
		m, err := Parse([]string{"/in:report.rpt", "/OUT:out.xml", "/extra:a:b"})
		require.NoError(t, err)

		assert.Equal(t, 3, m.Len())

		in, ok := m.Lookup("/IN")
		require.True(t, ok)
		assert.Equal(t, "report.rpt", in)

		out, ok := m.Lookup("/out")
		require.True(t, ok)
		assert.Equal(t, "out.xml", out)

		extra, ok := m.Lookup("/Extra")
		require.True(t, ok)
		assert.Equal(t, "a:b", extra, "only the first colon separates key and value")

		assert.Equal(t, []string{"/in", "/OUT", "/extra"}, m.Keys())
	})

	t.Run("windows drive letters survive", func(t *testing.T) {
		m, err := Parse([]string{`/in:C:\reports\a.rpt`, "/out:D:/x.xml"})
		require.NoError(t, err)

		in, _ := m.Lookup(KeyIn)
		assert.Equal(t, `C:\reports\a.rpt`, in)
	})

	t.Run("empty value", func(t *testing.T) {
		m, err := Parse([]string{"/in:", "/out:x"})
		require.NoError(t, err)

		in, ok := m.Lookup(KeyIn)
		assert.True(t, ok)
		assert.Empty(t, in)
	})
}

func TestParse_UsageErrors(t *testing.T) {
	testCases := []struct {
		name    string
		tokens  []string
		explain bool
	}{
		{name: "no tokens", tokens: nil},
		{name: "one token", tokens: []string{"/in:a.rpt"}},
		{name: "token without colon", tokens: []string{"/in:a.rpt", "/out"}},
		{name: "duplicate key", tokens: []string{"/in:a.rpt", "/IN:b.rpt"}, explain: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := Parse(tc.tokens)
			require.Error(t, err)
			assert.Nil(t, m)

			ue, ok := usage.As(err)
			require.True(t, ok, "expected a usage error, got %v", err)
			assert.Equal(t, tc.explain, ue.Explain)
		})
	}

	t.Run("duplicate key is named", func(t *testing.T) {
		_, err := Parse([]string{"/in:a.rpt", "/In:b.rpt"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `duplicate argument "/In"`)
	})
}

func TestRequire(t *testing.T) {
	m, err := Parse([]string{"/in:a.rpt", "/x:y"})
	require.NoError(t, err)

	in, err := m.Require(KeyIn)
	require.NoError(t, err)
	assert.Equal(t, "a.rpt", in)

	_, err = m.Require(KeyOut)
	require.Error(t, err)
	_, ok := usage.As(err)
	assert.True(t, ok)
	assert.Contains(t, err.Error(), "/out")
}

func TestSubArgs(t *testing.T) {
	t.Run("mixed present and absent values", func(t *testing.T) {
		s := ParseSubArgs("A=1;B;C=3")
		assert.Equal(t, 3, s.Len())

		a, ok := s.Lookup("a")
		assert.True(t, ok)
		assert.Equal(t, "1", a)

		_, ok = s.Lookup("B")
		assert.False(t, ok, "B carries no value")
		assert.True(t, s.Has("b"), "B is still present")

		c, ok := s.Lookup("C")
		assert.True(t, ok)
		assert.Equal(t, "3", c)

		assert.False(t, s.Has("D"))
	})

	t.Run("empty value differs from absent value", func(t *testing.T) {
		s := ParseSubArgs("A=")
		a, ok := s.Lookup("A")
		assert.True(t, ok)
		assert.Empty(t, a)
	})

	t.Run("only the first equals splits", func(t *testing.T) {
		s := ParseSubArgs("Expr=a=b")
		v, ok := s.Lookup("expr")
		assert.True(t, ok)
		assert.Equal(t, "a=b", v)
	})

	t.Run("from map", func(t *testing.T) {
		m, err := Parse([]string{"/in:a.rpt", "/CRYSTAL:UnrecognizedFunctionBehavior=Ignore"})
		require.NoError(t, err)

		s := m.SubArgs(KeyCrystal)
		v, ok := s.Lookup("unrecognizedfunctionbehavior")
		assert.True(t, ok)
		assert.Equal(t, "Ignore", v)
	})

	t.Run("absent key yields empty set", func(t *testing.T) {
		m, err := Parse([]string{"/in:a.rpt", "/out:b.xml"})
		require.NoError(t, err)

		s := m.SubArgs(KeyCrystal)
		assert.Equal(t, 0, s.Len())
		_, ok := s.Lookup("UnrecognizedFunctionBehavior")
		assert.False(t, ok)
	})
}
