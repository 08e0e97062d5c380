package dto

import (
	"klinik/internal/domains/account/model"
	"klinik/shared"
	gDto "klinik/shared/dto"
	gModel "klinik/shared/model"
	"klinik/shared/timezone"

	"github.com/google/uuid"
)

type CreateAccountRequest struct {
	Email    string `json:"email"    validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"required,oneof=admin doctor receptionist owner patient"`
}

func (c *CreateAccountRequest) ToModel(actor, hashedPassword string) model.Account {
	return model.Account{
		ID:       uuid.NewString(),
		Email:    c.Email,
		Password: hashedPassword,
		Role:     c.Role,
		Active:   true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  actor,
			ModifiedBy: actor,
		},
	}
}

type UpdateAccountRequest struct {
	Email     string `db:"email"      json:"email"      validate:"omitempty,email,max=100"`
	Role      string `db:"role"       json:"role"       validate:"omitempty,oneof=admin doctor receptionist owner patient"`
	AvatarURL string `db:"avatar_url" json:"avatar_url" validate:"omitempty,url"`
	Active    *bool  `db:"active"     json:"active"     validate:"omitempty"`
}

type AccountResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	LastLogin *string `json:"last_login,omitempty"`
	Active    bool    `json:"active"`
	gDto.Metadata
}

func (r *AccountResponse) FromModel(model model.Account) {
	r.ID = model.ID
	r.Email = model.Email
	r.Role = model.Role
	r.AvatarURL = model.AvatarURL
	r.LastLogin = model.LastLogin
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetAccountsResponse struct {
	Accounts  []AccountResponse `json:"accounts"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetAccountsResponse) FromModels(models []model.Account, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Accounts = make([]AccountResponse, len(models))
	for i, mod := range models {
		r.Accounts[i].FromModel(mod)
	}
}
