package validation

import (
	"net/url"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// SubmissionFromForm reads posted form values using the input names the
// HTML renderer emits: the field id, or id+"[]" for multi-select groups.
// File inputs are left to the caller since their metadata arrives outside
// url.Values; a posted value is taken as the file name.
func SubmissionFromForm(list *model.List, values url.Values) Submission {
	out := make(Submission, list.Len())
	for _, field := range list.Fields() {
		if !field.Type.AcceptsInput() {
			continue
		}
		switch {
		case field.Multi():
			out[field.ID] = model.SelectedValue(values[field.ID+"[]"]...)
		case field.Type == model.FieldTypeFile:
			if name := strings.TrimSpace(values.Get(field.ID)); name != "" {
				out[field.ID] = model.FileValue(model.FileRef{Name: name})
			} else {
				out[field.ID] = model.Value{}
			}
		default:
			out[field.ID] = model.TextValue(values.Get(field.ID))
		}
	}
	return out
}
