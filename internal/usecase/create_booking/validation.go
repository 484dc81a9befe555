package create_booking

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/wipeandshine/scheduling-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время начала указано
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if err := validateContactFields(req); err != nil {
		return err
	}

	return nil
}

// validateContactFields проверяет контактные данные клиента
func validateContactFields(req *Request) error {
	if strings.TrimSpace(req.CustomerName) == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}

	if utf8.RuneCountInString(req.CustomerName) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customerName is too long", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Phone) == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.CarNumber) == "" {
		return fmt.Errorf("%w: carNumber is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ParkingLocation) == "" {
		return fmt.Errorf("%w: parkingLocation is required", ErrInvalidInput)
	}

	return nil
}

// findCandidate ищет слот с запрошенным временем начала среди сгенерированных
// Совпадение по времени начала - единственный способ занять слот, произвольное
// время не принимается
func findCandidate(candidates []domain.CandidateSlot, start string) (domain.CandidateSlot, bool) {
	for _, c := range candidates {
		if c.StartTime.String() == start {
			return c, true
		}
	}
	return domain.CandidateSlot{}, false
}
