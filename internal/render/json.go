package render

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/dshills/swotboard/internal/schema"
)

// jsonRenderer emits the data set only; its output is exactly what import accepts.
type jsonRenderer struct{}

func (r *jsonRenderer) Render(report *Report) ([]byte, error) {
	out, err := schema.EncodeJSON(report.Data)
	if err != nil {
		return nil, goerr.Wrap(err, "encoding JSON export", goerr.T(ErrTagExport))
	}
	return append(out, '\n'), nil
}
