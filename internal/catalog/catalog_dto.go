package catalog

type ReplaceSkillsRequest struct {
	Skills []string `json:"skills" binding:"required,dive,required"`
}

type CertConfigInput struct {
	Name           string `json:"name" binding:"required"`
	IsMandatory    bool   `json:"is_mandatory"`
	ValidityMonths int    `json:"validity_months"`
	TemplateURL    string `json:"template_url"`
}

type ReplaceCertConfigsRequest struct {
	Certs []CertConfigInput `json:"certs" binding:"required,dive"`
}

type ReplaceContractTypesRequest struct {
	ContractTypes []string `json:"contract_types" binding:"required,dive,required"`
}

type SkillResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CertConfigResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	IsMandatory    bool   `json:"is_mandatory"`
	ValidityMonths int    `json:"validity_months"`
	TemplateURL    string `json:"template_url,omitempty"`
}

type ContractTypeResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
