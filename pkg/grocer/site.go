package grocer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Selectors maps logical page roles to CSS selectors. Site markup changes
// are absorbed here rather than in the automation code; every selector can
// be overridden from site.yaml.
type Selectors struct {
	ProductTile     string `yaml:"product_tile"`
	AddToCartButton string `yaml:"add_to_cart_btn"`
	ProductTitle    string `yaml:"product_title"`
	ProductPrice    string `yaml:"product_price"`
	CartTotal       string `yaml:"cart_total"`
	LoggedInMarker  string `yaml:"logged_in_indicator"`
}

// SiteConfig describes the grocery site being driven: its URLs and the
// selectors for the page elements the automation interacts with.
type SiteConfig struct {
	BaseURL   string    `yaml:"base_url"`
	SearchURL string    `yaml:"search_url"`
	CartURL   string    `yaml:"cart_url"`
	LoginURL  string    `yaml:"login_url"`
	Selectors Selectors `yaml:"selectors"`
}

// DefaultSiteConfig returns the built-in HEB configuration.
func DefaultSiteConfig() SiteConfig {
	return SiteConfig{
		BaseURL:   "https://www.heb.com",
		SearchURL: "https://www.heb.com/search/?q=",
		CartURL:   "https://www.heb.com/cart",
		LoginURL:  "https://www.heb.com/signin",
		Selectors: Selectors{
			ProductTile:     "[data-qe='product-tile']",
			AddToCartButton: "button[data-qe='add-to-cart-btn']",
			ProductTitle:    "[data-qe='product-title'], .product-title",
			ProductPrice:    "[data-qe='product-price'], .product-price",
			CartTotal:       "[data-qe='cart-total'], .cart-total, .order-total",
			LoggedInMarker:  "[data-qe='account-menu']",
		},
	}
}

// LoadSiteConfig returns the default configuration overlaid with any values
// found in the YAML file at path. A missing file is not an error; a present
// but unparseable file is.
func LoadSiteConfig(path string) (SiteConfig, error) {
	cfg := DefaultSiteConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read site config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultSiteConfig(), fmt.Errorf("failed to parse site config %s: %w", path, err)
	}
	return cfg, nil
}
