package console

import (
	"fmt"

	"backoffice/internal/database"
	"backoffice/internal/loyalty"
	"backoffice/internal/models"
)

func (s *Service) profiles() ([]models.Customer, []models.Outlet, error) {
	orders, err := s.store.ListOrders()
	if err != nil {
		return nil, nil, err
	}
	outlets, err := s.store.ListOutlets()
	if err != nil {
		return nil, nil, err
	}
	customers := loyalty.BuildCustomerProfiles(orders, outlets)
	s.monitor.SetLoyalCustomers(len(customers))
	return customers, outlets, nil
}

// Customers lists loyal customers matching query, ordered by key
func (s *Service) Customers(query string, key loyalty.SortKey) ([]models.Customer, error) {
	customers, outlets, err := s.profiles()
	if err != nil {
		return nil, err
	}
	return loyalty.Sort(loyalty.Search(customers, query, outlets), key), nil
}

// CustomerSummary returns the loyalty KPIs over every loyal customer
func (s *Service) CustomerSummary() (loyalty.Summary, error) {
	customers, _, err := s.profiles()
	if err != nil {
		return loyalty.Summary{}, err
	}
	return loyalty.Summarize(customers), nil
}

// Customer returns one loyal customer profile
func (s *Service) Customer(id string) (models.Customer, error) {
	customers, _, err := s.profiles()
	if err != nil {
		return models.Customer{}, err
	}
	c, ok := loyalty.Find(customers, id)
	if !ok {
		return models.Customer{}, fmt.Errorf("customer %s: %w", id, database.ErrNotFound)
	}
	return c, nil
}
