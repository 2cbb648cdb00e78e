package dto

type SetResultRequestDTO struct {
	Outcome string `json:"outcome" example:"penalizada"`
}

type CompleteBillingRequestDTO struct {
	DocumentType   string `json:"document_type" example:"RUC"`
	DocumentNumber string `json:"document_number" example:"20481234567"`
	DocumentName   string `json:"document_name" example:"Transportes Rivera SAC"`
}
