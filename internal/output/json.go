package output

import (
	"encoding/json"

	"github.com/vizlens/vizlens/internal/core"
)

// JSONFormatter renders the full response envelope as JSON.
type JSONFormatter struct {
	Indent bool
}

// FormatAudit renders an audit response as JSON.
func (f *JSONFormatter) FormatAudit(response *core.AuditResponse) (string, error) {
	if response == nil {
		return "", nil
	}

	var (
		data []byte
		err  error
	)

	if f.Indent {
		data, err = json.MarshalIndent(response, "", "  ")
	} else {
		data, err = json.Marshal(response)
	}
	if err != nil {
		return "", err
	}

	return string(data), nil
}
