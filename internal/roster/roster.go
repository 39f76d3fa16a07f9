package roster

// Employee is static reference data. The roster is loaded once at startup and
// never written back by the application; shifts and clicks reference it by ID.
type Employee struct {
	ID         string
	Name       string
	Department string
}

// Default returns the built-in employee roster.
func Default() []Employee {
	return []Employee{
		{ID: "emp1", Name: "Muhammad Bilal", Department: "Development"},
		{ID: "emp2", Name: "Saif Akram", Department: "Development"},
		{ID: "emp3", Name: "Fizza Rehan", Department: "Development"},
		{ID: "emp4", Name: "Ali Hassan", Department: "Development"},
		{ID: "emp5", Name: "Muhammad Shoaib", Department: "Development"},
		{ID: "emp6", Name: "Muhammad Hamza", Department: "Development"},
		{ID: "emp7", Name: "Khubaib Akhter", Department: "Development"},
		{ID: "emp8", Name: "Muhammad Usama", Department: "Development"},
		{ID: "emp9", Name: "Mohsin Mehfooz", Department: "Development"},
		{ID: "emp10", Name: "Taimor Agha", Department: "Development"},
		{ID: "emp11", Name: "Ahsan Shahzad", Department: "Development"},
		{ID: "emp12", Name: "Muhammad Umer", Department: "Development"},
		{ID: "emp13", Name: "Shanzay", Department: "Development"},
		{ID: "emp14", Name: "Haroon Humayun", Department: "Development"},
		{ID: "emp15", Name: "Muhammad Shabir", Department: "Development"},
		{ID: "emp16", Name: "Hashim Ali", Department: "Development"},
		{ID: "emp17", Name: "Mutahir", Department: "Development"},
		{ID: "emp18", Name: "Umar Humayun", Department: "Development"},
	}
}

// Roster is an immutable employee list with ID lookup.
type Roster struct {
	employees []Employee
	byID      map[string]Employee
}

func New(employees []Employee) *Roster {
	byID := make(map[string]Employee, len(employees))
	for _, e := range employees {
		byID[e.ID] = e
	}
	return &Roster{employees: employees, byID: byID}
}

// List returns the employees in roster order.
func (r *Roster) List() []Employee {
	return r.employees
}

// ByID looks up an employee. The second return is false for unknown IDs.
func (r *Roster) ByID(id string) (Employee, bool) {
	e, ok := r.byID[id]
	return e, ok
}

// DisplayName returns the employee's name for known IDs, or the raw ID so
// that records referencing a retired employee still render.
func (r *Roster) DisplayName(id string) string {
	if e, ok := r.byID[id]; ok {
		return e.Name
	}
	return id
}
