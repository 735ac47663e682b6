package store

import "github.com/fjod/go_cart/storefront/internal/navigation"

func navigationScroll(counter *int) navigation.ScrollResetter {
	return navigation.ScrollFunc(func() { *counter++ })
}
