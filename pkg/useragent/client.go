package useragent

import "fmt"

// Client bundles everything derived from a single client signature.
type Client struct {
	signature      string
	classification Classification
	platform       Platform
}

// Parse classifies the signature and derives its platform in one pass.
func Parse(signature string) Client {
	return Client{
		signature:      signature,
		classification: Classify(signature),
		platform:       ParsePlatform(signature),
	}
}

// String returns the raw client signature
func (c Client) String() string { return c.signature }

// Signature returns the raw client signature
func (c Client) Signature() string { return c.signature }

// Classification returns the in-app detection result
func (c Client) Classification() Classification { return c.classification }

// Family returns the detected in-app browser family
func (c Client) Family() Family { return c.classification.Family }

// Platform returns the platform flags
func (c Client) Platform() Platform { return c.platform }

// IsInApp returns true if the page is rendered inside an app's web view
func (c Client) IsInApp() bool { return c.classification.Embedded }

// GetShortIdentifier returns a short human-readable identifier for logging.
// Format: Family (os)
func (c Client) GetShortIdentifier() string {
	return fmt.Sprintf("%s (%s)", c.classification.Family, c.platform.OS())
}
