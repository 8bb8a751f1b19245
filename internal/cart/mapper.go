package cart

// MapItemsToLines converts stored cart items into the client-facing shape.
// Nil sequences become empty arrays so the wire format never carries null.
func MapItemsToLines(items []CartItem) []Line {
	lines := make([]Line, 0, len(items))

	for _, item := range items {
		images := item.Images
		if images == nil {
			images = []string{}
		}

		materials := item.Materials
		if materials == nil {
			materials = []string{}
		}

		lines = append(lines, Line{
			ID:          item.ProductID,
			Name:        item.Name,
			Price:       item.Price,
			Images:      images,
			Description: item.Description,
			Materials:   materials,
			Slug:        item.Slug,
			Quantity:    item.Quantity,
			InStock:     item.InStock,
		})
	}

	return lines
}
