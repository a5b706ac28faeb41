package domain

// Campos del catálogo que el asistente puede mencionar en su respuesta.
const (
	FieldCategory        = "Category"
	FieldMedicalFeatures = "Medical Features"
	FieldTags            = "Tags"
	FieldNutritionalInfo = "Nutritional Info"
)

// FieldMatch representa un patrón (regex, sin distinguir mayúsculas) sobre un campo.
type FieldMatch struct {
	Field   string
	Pattern string
}

// ProductQuery es el filtro extraído de la respuesta del LLM.
// Categories se combinan con OR; Conditions forman otro grupo OR
// que se combina con AND cuando ambos existen.
type ProductQuery struct {
	Categories []string
	Conditions []FieldMatch
}

func (q ProductQuery) IsEmpty() bool {
	return len(q.Categories) == 0 && len(q.Conditions) == 0
}

// Product es un documento hijo del catálogo tal como está almacenado.
type Product map[string]any
