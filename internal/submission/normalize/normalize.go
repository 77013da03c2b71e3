// Package normalize maps loosely-shaped worker registration input onto
// canonical field names. The website has historically sent several field
// name variants (camelCase from the JSON path, snake_case from the
// multipart path, plus a few legacy shorthands), so the server accepts
// all of them and resolves each canonical field from an ordered alias
// table before validation.
package normalize

import "merididi/internal/submission/models"

// workerAliases lists, per canonical field, the accepted input names in
// priority order. The first present, non-empty value wins. Absent fields
// stay empty; rejecting them is validation's job, not ours.
var workerAliases = []struct {
	canonical string
	aliases   []string
}{
	{"name", []string{"name"}},
	{"email", []string{"email"}},
	{"phone", []string{"phone"}},
	{"address", []string{"address"}},
	{"city", []string{"city"}},
	{"gender", []string{"gender"}},
	{"serviceType", []string{"serviceType", "service", "service_type"}},
	{"experience", []string{"experience", "exp"}},
	{"availability", []string{"availability"}},
	{"idType", []string{"idType", "id_type"}},
	{"idNumber", []string{"idNumber", "id_number"}},
	{"dob", []string{"dob"}},
	{"bio", []string{"bio", "about"}},
}

// Worker resolves aliased input into a request using only canonical
// field names. Pure: no validation, no errors.
func Worker(in map[string]string) models.WorkerRequest {
	resolved := make(map[string]string, len(workerAliases))
	for _, f := range workerAliases {
		for _, alias := range f.aliases {
			if v, ok := in[alias]; ok && v != "" {
				resolved[f.canonical] = v
				break
			}
		}
	}
	return models.WorkerRequest{
		Name:         resolved["name"],
		Email:        resolved["email"],
		Phone:        resolved["phone"],
		Address:      resolved["address"],
		City:         resolved["city"],
		Gender:       resolved["gender"],
		ServiceType:  resolved["serviceType"],
		Experience:   resolved["experience"],
		Availability: resolved["availability"],
		IDType:       resolved["idType"],
		IDNumber:     resolved["idNumber"],
		DOB:          resolved["dob"],
		Bio:          resolved["bio"],
	}
}
