package ubo

import (
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
)

// PrintLayouts writes the layouts as a JSON array
func PrintLayouts(writer *jwriter.Writer, layouts ...Layout) error {
	layoutsArray := writer.Array()
	for index := range layouts {
		layouts[index].print(&layoutsArray)
	}
	layoutsArray.End()

	return writer.Error()
}

func (l *Layout) print(layoutsArray *jwriter.ArrayState) {
	objState := layoutsArray.Object()
	defer objState.End()

	objState.Name("Name").String(l.Name)
	objState.Name("Count").Int(int(l.Count))
	objState.Name("Size").Int(int(l.Size))

	fieldsArray := objState.Name("Fields").Array()
	defer fieldsArray.End()

	for index := range l.Fields {
		field := &l.Fields[index]

		obj := fieldsArray.Object()
		obj.Name("Name").String(field.Name)
		obj.Name("Type").String(field.Type.String())
		obj.Name("Count").Int(int(max(field.Count, 1)))
		obj.Name("Offset").Int(int(field.Offset))
		obj.Name("ByteOffset").Int(int(field.Offset * slotSize))
		obj.End()
	}
}
