package models

type Translation struct {
	Locale string `json:"locale" db:"locale"`
	Key    string `json:"key" db:"key"`
	Value  string `json:"value" db:"value"`
}
