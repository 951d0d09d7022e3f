package api

import "github.com/iudanet/bookpos/internal/models"

// SaleDocumentFrom строит wire-документ продажи для удалённого реестра
func SaleDocumentFrom(sale *models.Sale, location string) SaleDocument {
	lines := make([]SaleLineDocument, 0, len(sale.Lines))
	for _, line := range sale.Lines {
		lines = append(lines, SaleLineDocument{
			SKU:       line.SKU,
			Title:     line.Title,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			UnitCost:  line.UnitCost,
		})
	}

	return SaleDocument{
		SaleID:        sale.ID,
		Timestamp:     sale.Timestamp,
		Lines:         lines,
		PaymentMethod: string(sale.PaymentMethod),
		Cashier:       sale.Cashier,
		Location:      location,
		Discount:      sale.Discount,
		Subtotal:      sale.Subtotal,
		Total:         sale.Total,
		Profit:        sale.Profit,
	}
}

// ProductDocumentFrom строит wire-документ товара
func ProductDocumentFrom(product *models.Product) ProductDocument {
	return ProductDocument{
		SKU:       product.SKU,
		Title:     product.Title,
		Author:    product.Author,
		Category:  product.Category,
		ItemType:  product.ItemType,
		Price:     product.Price,
		Cost:      product.Cost,
		Stock:     product.Stock,
		Deleted:   product.Deleted,
		CreatedAt: product.CreatedAt,
		UpdatedAt: product.UpdatedAt,
	}
}

// ProductFromDocument восстанавливает товар из wire-документа
func ProductFromDocument(doc ProductDocument) *models.Product {
	return &models.Product{
		SKU:       doc.SKU,
		Title:     doc.Title,
		Author:    doc.Author,
		Category:  doc.Category,
		ItemType:  doc.ItemType,
		Price:     doc.Price,
		Cost:      doc.Cost,
		Stock:     doc.Stock,
		Deleted:   doc.Deleted,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}
