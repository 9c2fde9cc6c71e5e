package session

import (
	"strings"

	"shopgate/internal/client/models"
)

// Route names one view of the portal. Parameterized paths such as
// "update-product/42" are identified by their first segment.
type Route string

const (
	RouteLogin      Route = "login"
	RouteRegister   Route = "register"
	RouteOnboarding Route = "onboarding"

	RouteDashboard       Route = "dashboard"
	RouteOrders          Route = "orders"
	RouteProducts        Route = "products"
	RouteAddProduct      Route = "add-product"
	RouteUpdateProduct   Route = "update-product"
	RoutePreviewProduct  Route = "preview-product"
	RoutePendingApproval Route = "pending-approval"
	RouteSettings        Route = "settings"
)

var publicRoutes = map[Route]struct{}{
	RouteLogin: {}, RouteRegister: {}, RouteOnboarding: {},
}

var protectedRoutes = map[Route]struct{}{
	RouteDashboard: {}, RouteOrders: {}, RouteProducts: {},
	RouteAddProduct: {}, RouteUpdateProduct: {}, RoutePreviewProduct: {},
	RoutePendingApproval: {}, RouteSettings: {},
}

// ParseRoute maps a raw path onto a Route, stripping leading slashes and
// parameters. Unmatched paths produce an empty Route, which is neither
// public nor protected.
func ParseRoute(path string) Route {
	path = strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		path = path[:i]
	}
	r := Route(path)
	if _, ok := publicRoutes[r]; ok {
		return r
	}
	if _, ok := protectedRoutes[r]; ok {
		return r
	}
	return Route("")
}

func IsPublic(r Route) bool {
	_, ok := publicRoutes[r]
	return ok
}

func IsProtected(r Route) bool {
	_, ok := protectedRoutes[r]
	return ok
}

// RouteForStatus is the status-based landing page: approved accounts go
// to the dashboard, pending ones to the approval page, everything else
// back into onboarding.
func RouteForStatus(s models.AccountStatus) Route {
	switch {
	case s.Approved():
		return RouteDashboard
	case s == models.StatusPending:
		return RoutePendingApproval
	default:
		return RouteOnboarding
	}
}
