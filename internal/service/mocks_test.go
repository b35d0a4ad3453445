package service

import (
	"fleet-service/internal/model"
	"fleet-service/internal/repository"
	"fleet-service/internal/telemetry"
)

// The mocks share an optional call journal so ordering across components
// (remote call, cascade, deactivation) can be asserted.

type mockCompanyRepo struct {
	companies map[uint]*model.Company // companyRef -> company
	byLogin   map[string]*model.Company
	journal   *[]string

	createErr error
	created   []*model.Company
}

func newMockCompanyRepo() *mockCompanyRepo {
	return &mockCompanyRepo{
		companies: map[uint]*model.Company{},
		byLogin:   map[string]*model.Company{},
	}
}

func (m *mockCompanyRepo) log(op string) {
	if m.journal != nil {
		*m.journal = append(*m.journal, op)
	}
}

func (m *mockCompanyRepo) add(c *model.Company) {
	m.companies[c.CompanyRef] = c
	m.byLogin[c.Login] = c
}

func (m *mockCompanyRepo) ExistsByCompanyRef(companyRef uint) (bool, error) {
	_, ok := m.companies[companyRef]
	return ok, nil
}

func (m *mockCompanyRepo) Create(company *model.Company) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.add(company)
	m.created = append(m.created, company)
	return nil
}

func (m *mockCompanyRepo) FindAll() ([]model.Company, error) {
	var out []model.Company
	for _, c := range m.companies {
		if c.Active {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *mockCompanyRepo) FindByCompanyRef(companyRef uint) (*model.Company, error) {
	c, ok := m.companies[companyRef]
	if !ok || !c.Active {
		return nil, repository.ErrNotFound
	}
	return c, nil
}

func (m *mockCompanyRepo) FindByLogin(login string) (*model.Company, error) {
	c, ok := m.byLogin[login]
	if !ok || !c.Active {
		return nil, repository.ErrNotFound
	}
	return c, nil
}

func (m *mockCompanyRepo) Update(company *model.Company) error {
	m.add(company)
	return nil
}

func (m *mockCompanyRepo) DeactivateByCompanyRef(companyRef uint) error {
	m.log("company.deactivate")
	if c, ok := m.companies[companyRef]; ok {
		c.Active = false
	}
	return nil
}

type mockVehicleRepo struct {
	vehicles map[string]*model.Vehicle // vin -> vehicle
	journal  *[]string
}

func newMockVehicleRepo() *mockVehicleRepo {
	return &mockVehicleRepo{vehicles: map[string]*model.Vehicle{}}
}

func (m *mockVehicleRepo) log(op string) {
	if m.journal != nil {
		*m.journal = append(*m.journal, op)
	}
}

func (m *mockVehicleRepo) ExistsByVin(vin string) (bool, error) {
	_, ok := m.vehicles[vin]
	return ok, nil
}

func (m *mockVehicleRepo) Create(vehicle *model.Vehicle) error {
	m.vehicles[vehicle.Vin] = vehicle
	return nil
}

func (m *mockVehicleRepo) FindAll() ([]model.Vehicle, error) {
	var out []model.Vehicle
	for _, v := range m.vehicles {
		if v.Active {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (m *mockVehicleRepo) FindAllByCompanyRef(companyRef uint) ([]model.Vehicle, error) {
	var out []model.Vehicle
	for _, v := range m.vehicles {
		if v.Active && v.CompanyRef == companyRef {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (m *mockVehicleRepo) FindByVin(vin string) (*model.Vehicle, error) {
	v, ok := m.vehicles[vin]
	if !ok || !v.Active {
		return nil, repository.ErrNotFound
	}
	return v, nil
}

func (m *mockVehicleRepo) FindByVinAndCompanyRef(vin string, companyRef uint) (*model.Vehicle, error) {
	v, ok := m.vehicles[vin]
	if !ok || !v.Active || v.CompanyRef != companyRef {
		return nil, repository.ErrNotFound
	}
	return v, nil
}

func (m *mockVehicleRepo) Update(vehicle *model.Vehicle) error {
	m.vehicles[vehicle.Vin] = vehicle
	return nil
}

func (m *mockVehicleRepo) DeactivateByVin(vin string) error {
	m.log("vehicle.deactivate")
	if v, ok := m.vehicles[vin]; ok {
		v.Active = false
	}
	return nil
}

func (m *mockVehicleRepo) DeactivateByCompanyRef(companyRef uint) error {
	m.log("vehicle.cascade")
	for _, v := range m.vehicles {
		if v.CompanyRef == companyRef {
			v.Active = false
		}
	}
	return nil
}

type mockUserRepo struct {
	users map[uint]*model.User // id -> user
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: map[uint]*model.User{}}
}

func (m *mockUserRepo) ExistsByLogin(login string) (bool, error) {
	for _, u := range m.users {
		if u.Login == login {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepo) Create(user *model.User) error {
	if user.ID == 0 {
		user.ID = uint(len(m.users) + 1)
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) FindAll() ([]model.User, error) {
	var out []model.User
	for _, u := range m.users {
		if u.Active {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *mockUserRepo) FindAllByCompanyRef(companyRef uint) ([]model.User, error) {
	var out []model.User
	for _, u := range m.users {
		if u.Active && u.CompanyRef == companyRef {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *mockUserRepo) FindByID(id uint) (*model.User, error) {
	u, ok := m.users[id]
	if !ok || !u.Active {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) FindByCompanyRefAndID(companyRef, id uint) (*model.User, error) {
	u, ok := m.users[id]
	if !ok || !u.Active || u.CompanyRef != companyRef {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) FindByLogin(login string) (*model.User, error) {
	for _, u := range m.users {
		if u.Login == login && u.Active {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) Update(user *model.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) DeactivateByID(id uint) error {
	if u, ok := m.users[id]; ok {
		u.Active = false
	}
	return nil
}

// mockTelemetryAPI records calls and returns configured errors
type mockTelemetryAPI struct {
	journal *[]string

	registerCompanyErr error
	deleteCompanyErr   error
	registerVehicleErr error
	deleteVehicleErr   error

	registeredCompanies []*telemetry.CreateCompanyRequest
	registeredVehicles  []*telemetry.CreateVehicleRequest
	deletedCompanies    []uint
	deletedVehicles     []string
}

func (m *mockTelemetryAPI) log(op string) {
	if m.journal != nil {
		*m.journal = append(*m.journal, op)
	}
}

func (m *mockTelemetryAPI) RegisterCompany(req *telemetry.CreateCompanyRequest) error {
	m.log("remote.register_company")
	if m.registerCompanyErr != nil {
		return m.registerCompanyErr
	}
	m.registeredCompanies = append(m.registeredCompanies, req)
	return nil
}

func (m *mockTelemetryAPI) DeleteCompany(companyRef uint) error {
	m.log("remote.delete_company")
	if m.deleteCompanyErr != nil {
		return m.deleteCompanyErr
	}
	m.deletedCompanies = append(m.deletedCompanies, companyRef)
	return nil
}

func (m *mockTelemetryAPI) RegisterVehicle(companyRef uint, req *telemetry.CreateVehicleRequest) error {
	m.log("remote.register_vehicle")
	if m.registerVehicleErr != nil {
		return m.registerVehicleErr
	}
	m.registeredVehicles = append(m.registeredVehicles, req)
	return nil
}

func (m *mockTelemetryAPI) DeleteVehicle(companyRef uint, vin string) error {
	m.log("remote.delete_vehicle")
	if m.deleteVehicleErr != nil {
		return m.deleteVehicleErr
	}
	m.deletedVehicles = append(m.deletedVehicles, vin)
	return nil
}
