package models

// FarmerStats — агрегированная сводка по хозяйству фермера
// для панели мониторинга.
type FarmerStats struct {
	TotalFarms        int     `json:"total_farms"`
	TotalCrops        int     `json:"total_crops"`
	TotalCredits      int     `json:"total_carbon_credits"`
	TotalCreditsSold  int     `json:"total_credits_sold"`
	TotalRevenue      float64 `json:"total_revenue"`       // Сумма amount*price по проданным кредитам
	TotalCarbonAmount float64 `json:"total_carbon_amount"` // Суммарный объём CO2 по всем кредитам, тонн
}

// IndustryStats — агрегированная сводка по покупкам предприятия.
type IndustryStats struct {
	TotalPurchased    int     `json:"total_purchased"`
	TotalCarbonOffset float64 `json:"total_carbon_offset"` // Суммарный объём купленного CO2, тонн
	TotalSpent        float64 `json:"total_spent"`
}
