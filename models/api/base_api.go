package apimodels

import (
	"sort"
	"strings"
)

type Response struct {
	Status   string            `json:"status"`             //результат обработки fail/success
	Message  string            `json:"message,omitempty"`  //сообщение ошибки
	Category string            `json:"category,omitempty"` //validation/signature
	Errors   map[string]string `json:"errors,omitempty"`   //ошибки по полям формы
	Data     interface{}       `json:"data,omitempty"`     //данные ответа
}

type ScrollerResponse struct {
	Response
	RowCount int64 `json:"row_count,omitempty"` //для списков, общее кол-во записей, учитывая фильтр (если он есть)
}

func NewError(message string) Response {
	return Response{
		Status:  "fail",
		Message: message,
	}
}

func NewResponse(data interface{}) Response {
	return Response{
		Status: "success",
		Data:   data,
	}
}

const (
	CategoryValidation = "validation"
	CategorySignature  = "signature"
)

// ValidationErrors ошибки формы по полям, накапливаются все, без выхода на первой
type ValidationErrors map[string]string

func (v ValidationErrors) Add(field, message string) {
	if _, exist := v[field]; exist {
		return
	}
	v[field] = message
}

func (v ValidationErrors) Has(field string) bool {
	_, ok := v[field]
	return ok
}

func (v ValidationErrors) Empty() bool {
	return len(v) == 0
}

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+v[field])
	}
	return strings.Join(parts, "; ")
}

// Category ошибки подписи выделяются отдельно, чтобы клиент сфокусировал пользователя на этом блоке
func (v ValidationErrors) Category() string {
	if len(v) == 1 && v.Has("signature") {
		return CategorySignature
	}
	return CategoryValidation
}

func NewValidationResponse(errs ValidationErrors) Response {
	message := "The form contains errors"
	if errs.Category() == CategorySignature {
		message = errs["signature"]
	}
	return Response{
		Status:   "fail",
		Message:  message,
		Category: errs.Category(),
		Errors:   errs,
	}
}

type Pagination struct {
	Limit int `json:"limit"` // Записей на странице
	Page  int `json:"page"`  // Страница (1,2,3..)
}

func (r Pagination) Validate() error {
	return nil
}

func (r Pagination) GetPage() (page, limit int) {
	page = 1
	limit = 10
	if r.Page > 0 {
		page = r.Page
	}
	if r.Limit > 0 {
		limit = r.Limit
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func NewScrollerResponse(data interface{}, rowCount int64) ScrollerResponse {
	return ScrollerResponse{
		Response: Response{
			Status: "success",
			Data:   data,
		},
		RowCount: rowCount,
	}
}
