package config

const (
	// MaxCaseTitleLength is the maximum length for case titles.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255).
	MaxCaseTitleLength = 255

	// MaxCaseDescriptionLength caps the free-text description of a case.
	MaxCaseDescriptionLength = 5000

	// MaxCaseTypeLength caps the case type label (picked from the role's list or typed in).
	MaxCaseTypeLength = 100

	// MaxArgumentTitleLength is the maximum length for argument titles.
	MaxArgumentTitleLength = 255

	// MaxArgumentContentLength caps argument bodies (rich text, stored as HTML or plain text).
	MaxArgumentContentLength = 50000

	// MaxSourceTitleLength is the maximum length for source titles.
	MaxSourceTitleLength = 255

	// MaxSourceContentLength caps the excerpt stored with a source.
	MaxSourceContentLength = 20000

	// MinProfileNameLength is the minimum length for a display name.
	MinProfileNameLength = 2

	// MaxProfileNameLength is the maximum length for a display name.
	MaxProfileNameLength = 100

	// MaxSourceURLLength is the maximum length for source URLs.
	MaxSourceURLLength = 2048

	// MaxGraphImageSize caps the graph snapshot uploaded with a PDF export (10MB).
	MaxGraphImageSize = 10 << 20

	// MaxJSONBodySize caps JSON request bodies. The largest is an argument
	// with MaxArgumentContentLength characters of HTML.
	MaxJSONBodySize = 1 << 20

	// AnalysisHistoryLimit is the number of AI analyses returned per argument.
	AnalysisHistoryLimit = 20
)
