package cleanup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollapseMixins(t *testing.T) {
	src := "export default {\n  mixins: [\n     formMixin,\n\t\tdataMixin ,\n\n  ],\n  data() {}\n}"

	got := CollapseMixins(src, DefaultMixinsFlag)

	assert.Equal(t, "export default {\n  mixins: window.$mixins ? [formMixin, dataMixin ,] : [],\n  data() {}\n}", got)
}

func TestCollapseMixins_Nested(t *testing.T) {
	src := `mixins: [withOptions({ keys: ['a', 'b'] }), other]`

	got := CollapseMixins(src, "globalThis.flags")

	assert.Equal(t, `mixins: globalThis.flags ? [withOptions({ keys: ['a', 'b'] }), other] : []`, got)
}

func TestCollapseMixins_BracketsInStringsAndComments(t *testing.T) {
	src := "mixins: [\n  make(']'), // closes ] here\n  /* [ */ other\n]"

	got := CollapseMixins(src, DefaultMixinsFlag)

	assert.Equal(t, "mixins: window.$mixins ? [make(']'), other] : []", got)
}

func TestCollapseMixins_RegexLiterals(t *testing.T) {
	src := "mixins: [/]/.test(x) ? a : b, match(/https?:\\/\\//), c]"

	got := CollapseMixins(src, DefaultMixinsFlag)

	assert.Equal(t, "mixins: window.$mixins ? [/]/.test(x) ? a : b, match(/https?:\\/\\//), c] : []", got)
}

func TestCollapseMixins_Unbalanced(t *testing.T) {
	src := "mixins: [a, b"
	assert.Equal(t, src, CollapseMixins(src, DefaultMixinsFlag))
}

func TestGuardDataSource(t *testing.T) {
	src := `methods: {
    load() {
        return this.__getOrCreateDataSource(foo);
    },
    reload() {
        return   this.__getOrCreateDataSource(bar);
    },
}`

	got := GuardDataSource(src, DefaultDataSourceHelper)

	want := `methods: {
    load() {
        if (!this.__getOrCreateDataSource) return;
        return this.__getOrCreateDataSource(foo);
    },
    reload() {
        if (!this.__getOrCreateDataSource) return;
        return   this.__getOrCreateDataSource(bar);
    },
}`
	assert.Equal(t, want, got)
	assert.Equal(t, 2, strings.Count(got, "if (!this.__getOrCreateDataSource) return;"))
}

func TestGuardDataSource_Inline(t *testing.T) {
	got := GuardDataSource("return this.__getOrCreateDataSource(foo)", DefaultDataSourceHelper)
	assert.Equal(t, "if (!this.__getOrCreateDataSource) return;\nreturn this.__getOrCreateDataSource(foo)", got)
}

func TestGuardDataSource_OtherHelperUntouched(t *testing.T) {
	src := "return this.fetchRows(foo)"
	assert.Equal(t, src, GuardDataSource(src, DefaultDataSourceHelper))
}

func TestReplaceMeta(t *testing.T) {
	src := "export default {\n  meta: { anything here, nested: { x: 1 } },\n  props: {}\n}"

	got := ReplaceMeta(src, "lcap-foo")

	assert.Equal(t, "export default {\n  name: 'lcap-foo',\n  props: {}\n}", got)
}

func TestReplaceMeta_StringWithBrace(t *testing.T) {
	src := "meta: { title: 'a } b', tpl: `x ${ {a:1}.a } }` }, next: 1"

	got := ReplaceMeta(src, "x-y")

	assert.Equal(t, "name: 'x-y', next: 1", got)
}

func TestReplaceMeta_RegexWithBrace(t *testing.T) {
	src := "meta: { re: /}/, ratio: a / b }, next: 1"

	got := ReplaceMeta(src, "t")

	assert.Equal(t, "name: 't', next: 1", got)
}

func TestReplaceMeta_Multiple(t *testing.T) {
	src := "a: { meta: {x: 1} }, b: { meta: {y: {z: 2}} }"

	got := ReplaceMeta(src, "t")

	assert.Equal(t, "a: { name: 't' }, b: { name: 't' }", got)
}

func TestReplaceMeta_IgnoresLongerIdentifiers(t *testing.T) {
	src := "formMeta: { a: 1 }"
	assert.Equal(t, src, ReplaceMeta(src, "t"))
}

func TestPipeline_Apply(t *testing.T) {
	src := `<template><div></div></template>
<script>
export default {
  meta: {
    title: 'Card',
    icon: { name: 'card' },
  },
  mixins: [
    a,
    b
  ],
  methods: {
    rows() {
      return this.__getOrCreateDataSource('rows');
    },
  },
};
</script>`

	got, st := DefaultPipeline().Apply(src, "lcap-card")

	assert.Contains(t, got, "name: 'lcap-card',")
	assert.NotContains(t, got, "meta:")
	assert.Contains(t, got, "mixins: window.$mixins ? [a, b] : [],")
	assert.Contains(t, got, "      if (!this.__getOrCreateDataSource) return;\n      return this.__getOrCreateDataSource('rows');")
	assert.Equal(t, Stats{Mixins: 1, Guards: 1, Meta: 1}, st)
}

func TestPipeline_EmptyIdentifiersUseDefaults(t *testing.T) {
	got, _ := Pipeline{}.Apply("mixins: [a]", "t")
	assert.Equal(t, "mixins: window.$mixins ? [a] : []", got)
}

func TestStripComments(t *testing.T) {
	assert.Equal(t, "a, \n b", stripComments("a, // one\n b"))
	assert.Equal(t, "a,   b", stripComments("a, /* two */ b"))
	assert.Equal(t, "'// kept', `/* kept */`", stripComments("'// kept', `/* kept */`"))
	assert.Equal(t, "a ", stripComments("a // trailing"))
	assert.Equal(t, `x(/\/\/[/*]/), y`, stripComments(`x(/\/\/[/*]/), y`))
	assert.Equal(t, "a / b ", stripComments("a / b // half"))
}

func TestMatchClose(t *testing.T) {
	tests := []struct {
		src  string
		want int
	}{
		{"[]", 1},
		{"[[1], [2]]", 9},
		{"{a: '}'}", 7},
		{`{a: "\"}"}`, 9},
		{"{a: 1 // }\n}", 11},
		{"{a: /* } */ 1}", 13},
		{"{re: /}/}", 8},
		{`[/[\]]/]`, 7},
		{"(return /)/)", 11},
		{"{a: b / 2, c: d / 3}", 19},
		{"{a: x /}", 7},
		{"{a: /}\n}", 5},
		{"[1, 2", -1},
		{"[1, 2}", -1},
		{"{a: 'open}", -1},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.want, matchClose(tt.src, 0))
		})
	}
}
