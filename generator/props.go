package generator

import (
	"fmt"
	"strings"

	"github.com/teranos/lcapgen/component"
	"github.com/teranos/lcapgen/naming"
)

// InputSetter is the setter classification given to every generated property
const InputSetter = "InputSetter"

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// RenderProps renders one property declaration per parameter, separated by a
// blank line. Each field is named after its parameter, so parameters never
// share a member:
//
//	@Prop({ title: 'userId', description: 'User', setter: { concept: 'InputSetter' }})
//	userId: nasl.core.String = '';
func RenderProps(params []component.Param) string {
	decls := make([]string, 0, len(params))
	for _, p := range params {
		decls = append(decls, fmt.Sprintf(
			"@Prop({ title: '%s', description: '%s', setter: { concept: '%s' }})\n%s: nasl.core.String = '';",
			quoteEscaper.Replace(p.Name), quoteEscaper.Replace(p.Title), InputSetter, naming.FieldName(p.Name)))
	}
	return strings.Join(decls, "\n\n")
}
