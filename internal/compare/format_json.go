package compare

import (
	json "github.com/goccy/go-json"

	"github.com/rgehrsitz/heis/internal/domain"
)

// JSONFormatter formats comparison results as JSON
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

// jsonComparison adds the metric order used by the table and CSV views.
type jsonComparison struct {
	*ComparisonSet
	Metrics []domain.Metric `json:"metrics"`
}

// Format generates JSON output for comparison results
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	doc := jsonComparison{ComparisonSet: compSet, Metrics: domain.AllMetrics}

	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return "", err
	}

	return string(data) + "\n", nil
}
