package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Korolev2000/flightbooking/internal/domain"
	"github.com/Korolev2000/flightbooking/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockFlightUseCase is a mock implementation of flights.FlightUseCase
type MockFlightUseCase struct {
	mock.Mock
}

func (m *MockFlightUseCase) Search(ctx context.Context, filter repository.FlightFilter) ([]domain.Flight, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) GetByNumber(ctx context.Context, flightNumber string) (*domain.Flight, error) {
	args := m.Called(ctx, flightNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) UpdateStatus(ctx context.Context, flightNumber, status string) error {
	args := m.Called(ctx, flightNumber, status)
	return args.Error(0)
}

func TestFlightHandler_search(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("GET", "/flights?departure_location=LHR&arrival_location=JFK&date=2025-06-15&min_price=100&max_price=900&sort_by=price&sort_order=desc", nil)

	minPrice, maxPrice := 100.0, 900.0
	wantFilter := repository.FlightFilter{
		DepartureAirport: "LHR",
		ArrivalAirport:   "JFK",
		DatePrefix:       "2025-06-15",
		MinPrice:         &minPrice,
		MaxPrice:         &maxPrice,
		SortBy:           "price",
		SortDesc:         true,
	}
	result := []domain.Flight{{FlightNumber: "BA123", Airline: "British Airways", Price: 750}}
	mockService.On("Search", c.Request.Context(), wantFilter).Return(result, nil)

	handler.search(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []domain.Flight
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response, 1)
	assert.Equal(t, "BA123", response[0].FlightNumber)
	mockService.AssertExpectations(t)
}

func TestFlightHandler_search_invalidPrice(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("GET", "/flights?min_price=cheap", nil)

	handler.search(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid min_price")
	mockService.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestFlightHandler_search_noResults(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("GET", "/flights?departure_location=XXX", nil)

	mockService.On("Search", c.Request.Context(), mock.Anything).Return(nil, domain.ErrNoFlightsFound)

	handler.search(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "No flights found for the given criteria")
}

func TestFlightHandler_get(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "flight_number", Value: "BA123"}}
	c.Request = httptest.NewRequest("GET", "/flights/BA123", nil)

	flight := &domain.Flight{FlightNumber: "BA123", Airline: "British Airways", Status: domain.FlightStatusOnTime}
	mockService.On("GetByNumber", c.Request.Context(), "BA123").Return(flight, nil)

	handler.get(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response domain.Flight
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "British Airways", response.Airline)
	mockService.AssertExpectations(t)
}

func TestFlightHandler_get_notFound(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "flight_number", Value: "XX000"}}
	c.Request = httptest.NewRequest("GET", "/flights/XX000", nil)

	mockService.On("GetByNumber", c.Request.Context(), "XX000").Return(nil, domain.ErrFlightNotFound)

	handler.get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Flight not found")
}

func TestFlightHandler_updateStatus(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "flight_number", Value: "BA123"}}
	body, _ := json.Marshal(map[string]string{"status": "Delayed"})
	c.Request = httptest.NewRequest("PUT", "/flights/BA123/status", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("UpdateStatus", c.Request.Context(), "BA123", "Delayed").Return(nil)

	handler.updateStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Flight BA123 status updated to 'Delayed'")
	mockService.AssertExpectations(t)
}

func TestFlightHandler_updateStatus_invalid(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "flight_number", Value: "BA123"}}
	body, _ := json.Marshal(map[string]string{"status": "Vanished"})
	c.Request = httptest.NewRequest("PUT", "/flights/BA123/status", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("UpdateStatus", c.Request.Context(), "BA123", "Vanished").
		Return(domain.NewError(domain.ErrInvalidInput, "Invalid status"))

	handler.updateStatus(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid status")
}
