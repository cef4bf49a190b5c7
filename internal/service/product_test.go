package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/feb_ecommerce/internal/models"
	"github.com/Skotchmaster/feb_ecommerce/internal/mykafka"
	"github.com/Skotchmaster/feb_ecommerce/internal/transport"
)

func TestCreateProduct_OwnedByCaller(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "user1@mail.com", "u", false)

	p, err := f.products.CreateProduct(context.Background(), identityOf(u.ID), transport.CreateProductRequest{
		Name:  "Product 1",
		Price: ptr(100.0),
		Stock: ptr(10),
	})
	require.NoError(t, err)
	assert.Equal(t, u.ID, p.UserID)
	assert.Equal(t, "user1@mail.com", p.Owner.Email)
	assert.Nil(t, p.Description)

	last := f.pub.events[len(f.pub.events)-1]
	assert.Equal(t, mykafka.ProductEvents, last.Topic)
	assert.Equal(t, "product_created", last.Event["type"])
	assert.Equal(t, p.ID, last.Event["productID"])
}

func TestCreateProduct_Rejects(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "user1@mail.com", "u", false)

	_, err := f.products.CreateProduct(context.Background(), identityOf(u.ID), transport.CreateProductRequest{})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.products.CreateProduct(context.Background(), "not-a-user", transport.CreateProductRequest{Name: "x"})
	assert.ErrorIs(t, err, ErrUnauthorized)

	list, err := f.products.GetProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestGetProduct_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.products.GetProduct(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProduct_MergesTruthyFields(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "user1@mail.com", "u", false)
	p, err := f.products.CreateProduct(context.Background(), identityOf(u.ID), transport.CreateProductRequest{
		Name:        "Product 1",
		Description: ptr("Description 1"),
		Price:       ptr(100.0),
		Stock:       ptr(10),
	})
	require.NoError(t, err)

	updated, err := f.products.UpdateProduct(context.Background(), identityOf(u.ID), p.ID, transport.UpdateProductRequest{
		Name:        ptr("Updated Product 1"),
		Description: ptr(""),
		Price:       ptr(0.0),
		Stock:       ptr(5),
	})
	require.NoError(t, err)
	assert.Equal(t, "Updated Product 1", updated.Name)
	assert.Equal(t, "Description 1", *updated.Description)
	assert.Equal(t, 100.0, *updated.Price)
	assert.Equal(t, 5, *updated.Stock)
	assert.Equal(t, u.ID, updated.UserID)

	stored, err := f.products.GetProduct(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Updated Product 1", stored.Name)
	assert.Equal(t, 5, *stored.Stock)
	assert.Equal(t, "product_updated", f.pub.events[len(f.pub.events)-1].Event["type"])
}

func TestUpdateProduct_OwnerOnly(t *testing.T) {
	f := newFixture(t)
	owner := f.register(t, "user1@mail.com", "u", false)
	admin := f.register(t, "admin@mail.com", "a", true)
	p := f.product(t, owner, "Product 1")

	_, err := f.products.UpdateProduct(context.Background(), identityOf(admin.ID), p.ID, transport.UpdateProductRequest{
		Name: ptr("Hijacked"),
	})
	assert.ErrorIs(t, err, ErrForbidden)

	stored, err := f.products.GetProduct(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Product 1", stored.Name)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "user1@mail.com", "u", false)

	_, err := f.products.UpdateProduct(context.Background(), identityOf(u.ID), 77, transport.UpdateProductRequest{Name: ptr("x")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteProduct_AdminOnly(t *testing.T) {
	f := newFixture(t)
	owner := f.register(t, "user1@mail.com", "u", false)
	admin := f.register(t, "admin@mail.com", "a", true)
	p := f.product(t, owner, "Product 1")

	_, err := f.products.DeleteProduct(context.Background(), identityOf(owner.ID), p.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	deleted, err := f.products.DeleteProduct(context.Background(), identityOf(admin.ID), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Product 1", deleted.Name)

	_, err = f.products.GetProduct(context.Background(), p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "product_deleted", f.pub.events[len(f.pub.events)-1].Event["type"])

	var owners int64
	require.NoError(t, f.repo.DB.Model(&models.User{}).Where("id = ?", owner.ID).Count(&owners).Error)
	assert.EqualValues(t, 1, owners)
}

func TestDeleteProduct_ForbiddenBeforeLookup(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "user1@mail.com", "u", false)

	_, err := f.products.DeleteProduct(context.Background(), identityOf(u.ID), 12345)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestDeleteProduct_NotFoundForAdmin(t *testing.T) {
	f := newFixture(t)
	admin := f.register(t, "admin@mail.com", "a", true)

	_, err := f.products.DeleteProduct(context.Background(), identityOf(admin.ID), 12345)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMergeTruthy(t *testing.T) {
	p := &models.Product{Name: "A", Description: ptr("d"), Price: ptr(1.5), Stock: ptr(3)}

	mergeTruthy(p, transport.UpdateProductRequest{})
	assert.Equal(t, "A", p.Name)
	assert.Equal(t, "d", *p.Description)

	mergeTruthy(p, transport.UpdateProductRequest{Name: ptr(""), Stock: ptr(0), Price: ptr(2.5)})
	assert.Equal(t, "A", p.Name)
	assert.Equal(t, 3, *p.Stock)
	assert.Equal(t, 2.5, *p.Price)
}
