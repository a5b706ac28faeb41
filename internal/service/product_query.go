package service

import (
	"strings"

	"medchat/internal/domain"
)

var conditionFields = []string{
	domain.FieldMedicalFeatures,
	domain.FieldTags,
	domain.FieldNutritionalInfo,
}

// ExtractProductQuery busca etiquetas "Campo:" en la respuesta del asistente
// y arma el filtro del catálogo con los valores separados por coma.
func ExtractProductQuery(reply string) domain.ProductQuery {
	var q domain.ProductQuery
	if values, ok := labelValues(reply, domain.FieldCategory); ok {
		q.Categories = values
	}
	for _, field := range conditionFields {
		values, ok := labelValues(reply, field)
		if !ok {
			continue
		}
		for _, v := range values {
			q.Conditions = append(q.Conditions, domain.FieldMatch{Field: field, Pattern: v})
		}
	}
	return q
}

// labelValues toma el texto posterior a la primera aparición de "field:" hasta el fin de línea.
func labelValues(text, field string) ([]string, bool) {
	_, after, found := strings.Cut(text, field+":")
	if !found {
		return nil, false
	}
	line, _, _ := strings.Cut(strings.TrimSpace(after), "\n")

	var values []string
	for _, v := range strings.Split(line, ",") {
		if v = cleanLLMLabelValue(v); v != "" {
			values = append(values, v)
		}
	}
	return values, len(values) > 0
}
