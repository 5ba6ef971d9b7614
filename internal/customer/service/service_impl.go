package service

import (
	"context"
	"regexp"
	"strings"

	activitydomain "github.com/grazebox/backoffice/internal/activity/domain"
	activityservice "github.com/grazebox/backoffice/internal/activity/service"
	"github.com/grazebox/backoffice/internal/customer/domain"
	"github.com/grazebox/backoffice/internal/fault"
	"github.com/grazebox/backoffice/internal/normalize"
	"github.com/grazebox/backoffice/internal/store"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Permissive on purpose: the stored contact email only needs to look
// deliverable, not pass full RFC validation.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

var nonDigits = regexp.MustCompile(`[^\d]`)

type Params struct {
	fx.In

	Store    *store.Store
	Log      *zap.Logger
	Recorder *activityservice.Recorder
}

type Service struct {
	store    *store.Store
	log      *zap.Logger
	recorder *activityservice.Recorder
}

func New(p Params) domain.Service {
	return &Service{
		store:    p.Store,
		log:      p.Log.Named("customer.service"),
		recorder: p.Recorder,
	}
}

func (s *Service) Summary(ctx context.Context, gr string) (domain.Summary, error) {
	cust, ok := s.store.CustomerByGR(gr)
	if !ok {
		return domain.Summary{}, fault.NotFoundf("customer %s not found", normalize.ID(gr))
	}

	status := "Unknown"
	if sub, ok := s.store.SubscriptionByGR(gr); ok {
		status = sub.Status
	}

	return domain.Summary{
		GR:                 cust.GR,
		Name:               cust.FirstName + " " + cust.LastName,
		Postcode:           cust.Postcode,
		SubscriptionStatus: status,
	}, nil
}

func (s *Service) Search(ctx context.Context, field domain.SearchField, query string) ([]domain.Customer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fault.Validationf("search query is required")
	}

	if field == domain.SearchByGR {
		if cust, ok := s.store.CustomerByGR(query); ok {
			return []domain.Customer{cust}, nil
		}
		return []domain.Customer{}, nil
	}

	qn := normalize.Text(query)
	var results []domain.Customer
	for _, c := range s.store.Customers() {
		var haystack string
		switch field {
		case domain.SearchByFullName:
			haystack = c.FirstName + " " + c.LastName
		case domain.SearchByEmail:
			haystack = c.Email
		case domain.SearchByPhone:
			haystack = c.Phone
		case domain.SearchByPostcode:
			haystack = c.Postcode
		default:
			return nil, fault.Validationf("unknown search field %q", field)
		}
		if strings.Contains(normalize.Text(haystack), qn) {
			results = append(results, c)
		}
	}
	if results == nil {
		results = []domain.Customer{}
	}
	return results, nil
}

func (s *Service) UpdatePersonal(ctx context.Context, req domain.UpdatePersonalRequest) (domain.Customer, error) {
	if strings.TrimSpace(req.GR) == "" {
		return domain.Customer{}, fault.Validationf("account identifier is required")
	}
	for field, value := range map[string]string{
		"first_name": req.FirstName,
		"last_name":  req.LastName,
		"email":      req.Email,
		"phone":      req.Phone,
		"postcode":   req.Postcode,
	} {
		if strings.TrimSpace(value) == "" {
			return domain.Customer{}, fault.Validationf("missing required field: %s", field)
		}
	}

	firstName := capitalize(req.FirstName)
	lastName := capitalize(req.LastName)

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !strings.Contains(email, "@") {
		return domain.Customer{}, fault.Validationf("email address must contain an @ symbol")
	}
	if !emailPattern.MatchString(email) {
		return domain.Customer{}, fault.Validationf("please enter a valid email address")
	}

	phone := nonDigits.ReplaceAllString(req.Phone, "")
	if len(phone) != 11 {
		return domain.Customer{}, fault.Validationf("phone number must be exactly 11 digits")
	}
	phone = phone[:5] + " " + phone[5:]

	postcode, err := formatPostcode(req.Postcode)
	if err != nil {
		return domain.Customer{}, err
	}

	address := titleWords(req.Address)
	city := titleWords(req.City)

	var updated domain.Customer
	err = s.store.RunCommand(func(tx *store.Tx) error {
		old, ok := tx.CustomerByGR(req.GR)
		if !ok {
			return fault.NotFoundf("customer %s not found", normalize.ID(req.GR))
		}

		updated = old
		updated.FirstName = firstName
		updated.LastName = lastName
		updated.Email = email
		updated.Phone = phone
		updated.Postcode = postcode
		updated.Address = address
		updated.City = city
		tx.UpdateCustomer(updated)

		var changes []activitydomain.Change
		changes = activityservice.Diff(changes, "first_name", "First name", old.FirstName, updated.FirstName)
		changes = activityservice.Diff(changes, "last_name", "Last name", old.LastName, updated.LastName)
		changes = activityservice.Diff(changes, "email", "Email", old.Email, updated.Email)
		changes = activityservice.Diff(changes, "phone", "Phone", old.Phone, updated.Phone)
		changes = activityservice.Diff(changes, "postcode", "Postcode", old.Postcode, updated.Postcode)
		changes = activityservice.Diff(changes, "address", "Address", old.Address, updated.Address)
		changes = activityservice.Diff(changes, "city", "City", old.City, updated.City)

		s.recorder.RecordChange(tx, req.GR,
			activitydomain.CategoryPersonalUpdated,
			"Personal details updated",
			changes, false)
		return nil
	})
	if err != nil {
		return domain.Customer{}, err
	}

	s.log.Info("personal details updated", zap.String("gr", normalize.ID(req.GR)))
	return updated, nil
}

// capitalize lowercases the word and uppercases its first letter.
func capitalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// titleWords capitalizes each word of a free-text field.
func titleWords(s string) string {
	words := strings.Fields(strings.TrimSpace(s))
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

// formatPostcode uppercases, strips spaces and re-spaces the outcode from
// the 3-character incode: SW1A1AA -> SW1A 1AA.
func formatPostcode(raw string) (string, error) {
	pc := strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(raw)), " ", "")
	switch len(pc) {
	case 5:
		return pc[:2] + " " + pc[2:], nil
	case 6:
		return pc[:3] + " " + pc[3:], nil
	case 7:
		return pc[:4] + " " + pc[4:], nil
	default:
		return "", fault.Validationf("invalid postcode format, expected formats like SW1A 1AA, B1 1BB, or M1 2AB")
	}
}
