package trialapi

import (
	"context"
	"net/url"
)

// GetGenotypes fetches genotype records for a batch of ids in one call.
func (c *Client) GetGenotypes(ctx context.Context, genotypeIDs []string) (any, error) {
	return c.postJSON(ctx, "/germplasm/genotype/get/many", genotypeIDs)
}

// GetGenotypeDetails fetches one genotype record by its stable platform id.
func (c *Client) GetGenotypeDetails(ctx context.Context, genotypeID string) (any, error) {
	return c.getJSON(ctx, "/germplasm/genotype/"+url.PathEscape(genotypeID), nil)
}
