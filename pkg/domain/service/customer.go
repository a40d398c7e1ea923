package service

import (
	"errors"
	"fmt"
	"time"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"crm/pkg/domain/model"
	"crm/pkg/domain/validation"
)

var (
	ErrNameRequired = errors.New("name is required")
	ErrInvalidEmail = errors.New("invalid email format")
	ErrInvalidPhone = errors.New("invalid phone format")
)

type Event interface {
	Type() string
}

type EventDispatcher interface {
	Dispatch(event Event) error
}

// InvalidPhonePolicy controls what CreateCustomer does with a phone that
// fails the format check. The historical behavior is to keep the customer
// and drop the phone, so that is the default.
type InvalidPhonePolicy int

const (
	DropInvalidPhone InvalidPhonePolicy = iota
	RejectInvalidPhone
)

// CustomerInput is one row of a bulk create request.
type CustomerInput struct {
	Name  string `validate:"required"`
	Email string `validate:"required,crm_email"`
	Phone string `validate:"omitempty,crm_phone"`
}

type CustomerService interface {
	CreateCustomer(name, email, phone string) (*model.Customer, error)
	// BulkCreateCustomers validates every row independently and persists the
	// batch all-or-nothing: any row error means no customer is stored. Row
	// errors use 1-based numbering. The returned error reports storage
	// failures only.
	BulkCreateCustomers(inputs []CustomerInput) ([]*model.Customer, []string, error)
	GetCustomer(id uuid.UUID) (*model.Customer, error)
	ListCustomers() ([]*model.Customer, error)
}

func NewCustomerService(repo model.CustomerRepository, dispatcher EventDispatcher, phonePolicy InvalidPhonePolicy) CustomerService {
	return &customerService{
		repo:        repo,
		dispatcher:  dispatcher,
		phonePolicy: phonePolicy,
		validate:    validation.New(),
	}
}

type customerService struct {
	repo        model.CustomerRepository
	dispatcher  EventDispatcher
	phonePolicy InvalidPhonePolicy
	validate    *validatorv10.Validate
}

func (s *customerService) CreateCustomer(name, email, phone string) (*model.Customer, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	if !validation.ValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if _, err := s.repo.FindByEmail(email); err == nil {
		return nil, model.ErrEmailTaken
	} else if !errors.Is(err, model.ErrCustomerNotFound) {
		return nil, err
	}

	if !validation.ValidPhone(phone) {
		if s.phonePolicy == RejectInvalidPhone {
			return nil, ErrInvalidPhone
		}
		phone = ""
	}

	customerID, err := s.repo.NextID()
	if err != nil {
		return nil, err
	}

	customer := &model.Customer{
		ID:        customerID,
		Name:      name,
		Email:     email,
		Phone:     phone,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(customer); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.CustomerCreated{
		CustomerID: customerID,
		Email:      email,
		Name:       name,
	})

	return customer, nil
}

func (s *customerService) BulkCreateCustomers(inputs []CustomerInput) ([]*model.Customer, []string, error) {
	var rowErrors []string
	for i, input := range inputs {
		msg, err := s.checkRow(input)
		if err != nil {
			return nil, nil, err
		}
		if msg != "" {
			rowErrors = append(rowErrors, fmt.Sprintf("Row %d: %s", i+1, msg))
		}
	}
	if len(rowErrors) > 0 {
		return nil, rowErrors, nil
	}

	now := time.Now().UTC()
	customers := make([]*model.Customer, 0, len(inputs))
	for _, input := range inputs {
		customerID, err := s.repo.NextID()
		if err != nil {
			return nil, nil, err
		}
		customers = append(customers, &model.Customer{
			ID:        customerID,
			Name:      input.Name,
			Email:     input.Email,
			Phone:     input.Phone,
			CreatedAt: now,
		})
	}

	if err := s.repo.CreateBatch(customers); err != nil {
		return nil, nil, err
	}

	ids := make([]uuid.UUID, 0, len(customers))
	for _, c := range customers {
		ids = append(ids, c.ID)
	}
	_ = s.dispatcher.Dispatch(model.CustomersBulkCreated{CustomerIDs: ids})

	return customers, nil, nil
}

func (s *customerService) GetCustomer(id uuid.UUID) (*model.Customer, error) {
	return s.repo.Find(id)
}

func (s *customerService) ListCustomers() ([]*model.Customer, error) {
	return s.repo.FindAll()
}

// checkRow validates a single bulk row. Duplicates are checked against the
// existing store only, not against other rows in the same batch. A non-empty
// message marks the row invalid; a non-nil error is a repository failure.
func (s *customerService) checkRow(input CustomerInput) (string, error) {
	if err := s.validate.Struct(input); err != nil {
		return rowErrorMessage(err), nil
	}
	if _, err := s.repo.FindByEmail(input.Email); err == nil {
		return "email already exists", nil
	} else if !errors.Is(err, model.ErrCustomerNotFound) {
		return "", err
	}
	return "", nil
}

func rowErrorMessage(err error) string {
	var fieldErrors validatorv10.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return err.Error()
	}

	fe := fieldErrors[0]
	switch {
	case fe.StructField() == "Name":
		return "name is required"
	case fe.StructField() == "Email" && fe.Tag() == "required":
		return "email is required"
	case fe.StructField() == "Email":
		return "invalid email format"
	case fe.StructField() == "Phone":
		return "invalid phone format"
	default:
		return fe.Error()
	}
}
