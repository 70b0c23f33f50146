package extract

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/teranos/lcapgen/component"
	"github.com/teranos/lcapgen/errors"
)

const testDump = `{
  "app": {
    "name": "testaizcy",
    "frontendTypes": [
      {
        "name": "pc",
        "businessComponents": [
          {
            "name": "foo",
            "vue": "<template><div></div></template>\n<script>\nexport default { methods: { a() { return this.$logics['app.logics.loadUser'](); }, b() { return this.app.dataSources.users; } } };\n</script>",
            "json": {"title": "Foo", "params": [{"name": "userId", "title": "User"}]}
          },
          {
            "name": "lcap_bar",
            "vue": "<template><span></span></template>",
            "json": {"title": "Bar", "params": []}
          },
          {
            "name": "internal",
            "vue": "<template></template>"
          },
          {
            "name": "",
            "vue": "<template></template>"
          }
        ]
      },
      {
        "name": "h5",
        "businessComponents": []
      }
    ]
  }
}`

func parse(t *testing.T, data string) *App {
	t.Helper()
	app, err := ParseDump([]byte(data))
	require.NoError(t, err)
	return app
}

func TestExtract_EndToEnd(t *testing.T) {
	app := parse(t, testDump)

	records, err := Extract(app, Options{
		AppName:  "testaizcy",
		Frontend: "pc",
		Deny:     []string{"internal"},
		Prefix:   DefaultPrefix,
	}, zaptest.NewLogger(t).Sugar())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "lcap_foo", records[0].Name)
	assert.Equal(t, "lcap_bar", records[1].Name)

	src := records[0].SourceCode
	assert.Contains(t, src, `$logics['sharedApp.testaizcy.logics.loadUser']`)
	assert.NotContains(t, src, `'app.logics.`)
	assert.Contains(t, src, "this.sharedApp.testaizcy.dataSources.users")

	assert.JSONEq(t, `{"title": "Foo", "params": [{"name": "userId", "title": "User"}]}`, string(records[0].Nasl))
}

func TestExtract_AppNameFromDump(t *testing.T) {
	app := parse(t, testDump)

	records, err := Extract(app, Options{Frontend: "pc", Prefix: DefaultPrefix}, nil)
	require.NoError(t, err)
	assert.Contains(t, records[0].SourceCode, "sharedApp.testaizcy.logics.loadUser")
}

func TestExtract_UnwrappedDump(t *testing.T) {
	app := parse(t, `{"name": "demo", "frontendTypes": [{"name": "pc", "businessComponents": [{"name": "x", "vue": "v"}]}]}`)

	records, err := Extract(app, Options{Frontend: "pc", Prefix: DefaultPrefix}, nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "lcap_x", records[0].Name)
	assert.Equal(t, "null", string(records[0].Nasl))
}

func TestExtract_FrontendNotFound(t *testing.T) {
	app := parse(t, testDump)

	_, err := Extract(app, Options{AppName: "a", Frontend: "mobile"}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrFrontendNotFound))
	assert.Contains(t, errors.FlattenHints(err), "pc, h5")
}

func TestExtract_NoComponents(t *testing.T) {
	app := parse(t, testDump)

	_, err := Extract(app, Options{AppName: "a", Frontend: "h5"}, nil)
	assert.True(t, errors.Is(err, errors.ErrNoComponents))

	_, err = Extract(app, Options{AppName: "a", Frontend: "pc", Deny: []string{"foo", "lcap_bar", "internal"}}, nil)
	assert.True(t, errors.Is(err, errors.ErrNoComponents))
}

func TestExtract_MissingAppName(t *testing.T) {
	app := parse(t, `{"frontendTypes": [{"name": "pc", "businessComponents": [{"name": "x"}]}]}`)

	_, err := Extract(app, Options{Frontend: "pc"}, nil)
	require.Error(t, err)
	assert.NotEmpty(t, errors.GetAllHints(err))
}

func TestPrefixedName(t *testing.T) {
	tests := []struct {
		name, prefix, want string
	}{
		{"foo", "lcap_", "lcap_foo"},
		{"lcap_bar", "lcap_", "lcap_bar"},
		{"foo", "", "foo"},
		{"LCAP_foo", "lcap_", "lcap_LCAP_foo"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PrefixedName(tt.name, tt.prefix), tt.name)
	}
}

func TestRewriteSource(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "logic reference",
			src:  `this.$logics['app.logics.getList']({})`,
			want: `this.$logics['sharedApp.my.logics.getList']({})`,
		},
		{
			name: "several references",
			src:  `$logics['app.logics.a'] + $logics['app.logics.b']`,
			want: `$logics['sharedApp.my.logics.a'] + $logics['sharedApp.my.logics.b']`,
		},
		{
			name: "data sources",
			src:  `const ds = app.dataSources.orders;`,
			want: `const ds = sharedApp.my.dataSources.orders;`,
		},
		{
			name: "identifier ending in app is untouched",
			src:  `myapp.dataSources`,
			want: `myapp.dataSources`,
		},
		{
			name: "other logic namespaces are untouched",
			src:  `$logics['other.logics.a']`,
			want: `$logics['other.logics.a']`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RewriteSource(tt.src, "my"))
		})
	}
}

func TestRewriteSource_DollarInAppName(t *testing.T) {
	got := RewriteSource(`$logics['app.logics.x']`, "a$1b")
	assert.Equal(t, `$logics['sharedApp.a$1b.logics.x']`, got)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "components.json")
	records := []component.RawRecord{{
		Name:       "lcap_foo",
		SourceCode: "<template><div>&</div></template>",
		Nasl:       json.RawMessage(`{"title":"Foo","params":[]}`),
	}}

	require.NoError(t, WriteFile(path, records))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<template><div>&</div></template>")
	assert.Contains(t, string(data), "\n  {\n    \"name\": \"lcap_foo\"")

	loaded, err := component.LoadRecords(path)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "Foo", loaded[0].Nasl.Title)
	assert.Equal(t, records[0].SourceCode, loaded[0].SourceCode)
}
