package catalog

// ReasonCategory groups selectable stoppage reasons for the UI pickers.
type ReasonCategory struct {
	Category string   `json:"category"`
	Reasons  []string `json:"reasons"`
}

// CategoryOther is assigned when a free-text reason is not in the taxonomy.
// The engine accepts any non-empty reason; the catalog only classifies it.
const CategoryOther = "Khác"

var reasonTaxonomy = []ReasonCategory{
	{
		Category: "Sự Cố Kỹ Thuật",
		Reasons: []string{
			"Sự cố cơ",
			"Sự cố hơi, khí nén",
			"Xi đầu",
			"Sự cố khuôn",
			"Sự cố tay robot",
			"Sự cố dừng ngắn",
			"Sự cố điện",
			"Sự cố nguyên liệu",
			"Sự cố điện, hơi, nước",
			"Sự cố dao cắt",
			"Sự cố thủy lực",
			"Hư th.bị phụ (máy đ.gói, máy nạp phôi)",
			"Cúp điện",
		},
	},
	{
		Category: "Vận Hành Sản Xuất",
		Reasons: []string{
			"Qua màu",
			"Mở máy ra hàng",
			"Thay khuôn",
			"Cài đặt hiệu chỉnh",
			"Xả keo",
			"Thử khuôn",
			"Thử mẫu thử màu",
			"Nguyên nhân khác",
		},
	},
	{
		Category: "Chờ Đợi & Nhân Sự",
		Reasons: []string{
			"Chờ lên khuôn",
			"Chờ thay khuôn bị động",
			"Chờ KT chỉnh máy",
			"Hết nguyên liệu",
			"Thiếu nhân sự",
		},
	},
	{
		Category: "Kế Hoạch & Hệ Thống",
		Reasons: []string{
			"Không có đơn hàng",
			"Bảo trì",
			"Cân đối sản xuất",
			"Nghỉ lễ",
		},
	},
}

// Reasons returns the full categorized stoppage-reason taxonomy.
func Reasons() []ReasonCategory {
	out := make([]ReasonCategory, len(reasonTaxonomy))
	copy(out, reasonTaxonomy)
	return out
}

// PlannedReasons are the systemic/scheduling stoppages excluded from the
// availability denominator. Overridable via analytics.planned_reasons config.
func PlannedReasons() []string {
	return []string{"Không có đơn hàng", "Bảo trì", "Cân đối sản xuất", "Nghỉ lễ"}
}

// CategoryOf resolves the taxonomy category of a reason, or CategoryOther for
// reasons outside the fixed list.
func CategoryOf(reason string) string {
	for _, c := range reasonTaxonomy {
		for _, r := range c.Reasons {
			if r == reason {
				return c.Category
			}
		}
	}
	return CategoryOther
}
