// internal/services/customer_service.go
package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/brightcart/storefront/internal/apperrors"
	"github.com/brightcart/storefront/internal/models"
	"github.com/brightcart/storefront/internal/utils"
	"github.com/brightcart/storefront/pkg/authz"
)

type CustomerService struct {
	db *gorm.DB
}

func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{db: db}
}

type CreateCustomerRequest struct {
	ExternalIdentityID string   `json:"externalIdentityId" validate:"required"`
	Email              string   `json:"email" validate:"required,email"`
	FirstName          string   `json:"firstName,omitempty"`
	LastName           string   `json:"lastName,omitempty"`
	Roles              []string `json:"roles,omitempty" validate:"omitempty,min=1,dive,role"`
}

type UpdateCustomerRequest struct {
	Email     *string  `json:"email,omitempty" validate:"omitempty,email"`
	FirstName *string  `json:"firstName,omitempty"`
	LastName  *string  `json:"lastName,omitempty"`
	Roles     []string `json:"roles,omitempty" validate:"omitempty,min=1,dive,role"`
}

func (s *CustomerService) Create(req *CreateCustomerRequest) (*models.Customer, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, utils.ValidationErrorFrom(err)
	}

	roles := req.Roles
	if len(roles) == 0 {
		roles = []string{string(authz.RoleCustomer)}
	}

	customer := &models.Customer{
		ExternalIdentityID: req.ExternalIdentityID,
		Email:              req.Email,
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Roles:              pq.StringArray(roles),
	}

	if err := s.db.Create(customer).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, &apperrors.ConflictError{Resource: "customer", Key: req.Email}
		}
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	return customer, nil
}

// FindByExternalID resolves an identity-provider account into the domain
// customer. Absence is an expected outcome here, so it returns (nil, nil)
// rather than an error.
func (s *CustomerService) FindByExternalID(externalID string) (*models.Customer, error) {
	var customer models.Customer
	err := s.db.Where("external_identity_id = ?", externalID).First(&customer).Error
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &customer, nil
}

func (s *CustomerService) FindByID(id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	if err := s.db.First(&customer, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, &apperrors.NotFoundError{Resource: "customer"}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &customer, nil
}

func (s *CustomerService) Update(id uuid.UUID, req *UpdateCustomerRequest) (*models.Customer, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, utils.ValidationErrorFrom(err)
	}

	customer, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if len(req.Roles) > 0 {
		updates["roles"] = pq.StringArray(req.Roles)
	}
	if len(updates) == 0 {
		return customer, nil
	}

	if err := s.db.Model(customer).Updates(updates).Error; err != nil {
		if isDuplicateKey(err) {
			key := customer.Email
			if req.Email != nil {
				key = *req.Email
			}
			return nil, &apperrors.ConflictError{Resource: "customer", Key: key}
		}
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	return s.FindByID(id)
}

// UpsertFromIdentity syncs a customer record from an identity-provider event.
// Creation conflicts are resolved in favor of the existing record, which is
// then updated in place.
func (s *CustomerService) UpsertFromIdentity(externalID, email, firstName, lastName string, roles []string) (*models.Customer, error) {
	existing, err := s.FindByExternalID(externalID)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		customer, err := s.Create(&CreateCustomerRequest{
			ExternalIdentityID: externalID,
			Email:              email,
			FirstName:          firstName,
			LastName:           lastName,
			Roles:              roles,
		})
		if err == nil {
			return customer, nil
		}
		// Lost a concurrent create race: fall through to update the winner.
		if _, conflict := err.(*apperrors.ConflictError); !conflict {
			return nil, err
		}
		if existing, err = s.FindByExternalID(externalID); err != nil || existing == nil {
			return nil, &apperrors.ConflictError{Resource: "customer", Key: email}
		}
	}

	req := &UpdateCustomerRequest{
		Email:     &email,
		FirstName: &firstName,
		LastName:  &lastName,
		Roles:     roles,
	}
	return s.Update(existing.ID, req)
}
