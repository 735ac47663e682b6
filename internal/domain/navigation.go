package domain

type View string

const (
	ViewStore View = "store"
	ViewAdmin View = "admin"
)

// Page tokens the engine itself relies on. Any other string is a valid page.
const (
	PageHome           = "home"
	PageProduct        = "product"
	PageAdminDashboard = "admin-dashboard"
)

// LandingPage is the page a view opens on.
func (v View) LandingPage() string {
	if v == ViewAdmin {
		return PageAdminDashboard
	}
	return PageHome
}

// NavigationSelection is a point-in-time copy of the navigation state.
// Empty ids mean nothing is selected.
type NavigationSelection struct {
	CurrentView        View   `json:"currentView"`
	CurrentPage        string `json:"currentPage"`
	SelectedProductID  string `json:"selectedProductId,omitempty"`
	SelectedCategoryID string `json:"selectedCategoryId,omitempty"`
	SelectedOrderID    string `json:"selectedOrderId,omitempty"`
	SelectedCustomerID string `json:"selectedCustomerId,omitempty"`
	SearchQuery        string `json:"searchQuery,omitempty"`
}
