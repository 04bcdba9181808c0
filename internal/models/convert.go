package models

func (m MenuRequest) ToInput() MenuInput {
	return MenuInput{
		Name:        m.Name,
		Order:       m.Order,
		Icon:        m.Icon,
		Description: m.Description,
		RawStatus:   m.Status,
	}
}

func MenuToResponse(m *Menu) MenuResponse {
	if m == nil {
		return MenuResponse{}
	}

	return MenuResponse{
		ID:          m.ID,
		Name:        m.Name,
		Order:       m.Order,
		Icon:        m.Icon,
		Description: m.Description,
		Status:      m.Status.String(),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// MenusToResponse никогда не возвращает nil: пустой список кодируется как [].
func MenusToResponse(ms []Menu) []MenuResponse {
	out := make([]MenuResponse, 0, len(ms))
	for i := range ms {
		out = append(out, MenuToResponse(&ms[i]))
	}

	return out
}
