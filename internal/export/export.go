// Package export serializes a CalculationResult into downloadable
// documents. Formatters are pure functions of the result; persisting or
// offering the file to the user is the caller's job.
package export

import (
	"fmt"

	"paintcalc/internal/domain"
)

// Format 导出格式
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// File 交给下载协作方的内容：字节 + 文件名 + Content-Type
type File struct {
	Name        string
	ContentType string
	Content     []byte
}

// Build renders the result in the requested format.
func Build(result *domain.CalculationResult, format Format) (*File, error) {
	switch format {
	case FormatJSON:
		content, err := JSON(result)
		if err != nil {
			return nil, err
		}
		return &File{Name: "paint-estimate.json", ContentType: "application/json", Content: content}, nil
	case FormatCSV:
		return &File{Name: "paint-estimate.csv", ContentType: "text/csv", Content: []byte(CSV(result))}, nil
	case FormatXLSX:
		content, err := Excel(result)
		if err != nil {
			return nil, err
		}
		return &File{
			Name:        "paint-estimate.xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Content:     content,
		}, nil
	}
	return nil, fmt.Errorf("unsupported export format: %q", format)
}
