package order_test

import (
	"fmt"
	"testing"

	"checkout/internal/core/domain/model/order"
	"checkout/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate valid statuses", func(t *testing.T) {
		for _, status := range []order.Status{order.Created, order.Processing, order.Delivered, order.Cancelled} {
			t.Run(fmt.Sprintf("should validate %s status", status), func(t *testing.T) {
				require.NoError(t, status.Validate())

				parsed, err := order.ParseStatus(status.String())
				require.NoError(t, err)
				assert.Equal(t, status, parsed)
			})
		}
	})

	t.Run("should reject invalid status values", func(t *testing.T) {
		for _, status := range []order.Status{order.Unknown, order.Status(-1), order.Status(99)} {
			err := status.Validate()

			require.Error(t, err)
			assert.IsType(t, &errs.ValueIsInvalidError{}, err)
			assert.Equal(t, "Unknown", status.String())
		}
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		_, err := order.ParseStatus("Assigned")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    order.Status
		apply   func(order.Status) (order.Status, error)
		want    order.Status
		wantErr bool
	}{
		{"Created can process", order.Created, order.Status.Process, order.Processing, false},
		{"Processing can deliver", order.Processing, order.Status.Deliver, order.Delivered, false},
		{"Created can cancel", order.Created, order.Status.Cancel, order.Cancelled, false},
		{"Processing can cancel", order.Processing, order.Status.Cancel, order.Cancelled, false},
		{"Created cannot deliver", order.Created, order.Status.Deliver, order.Unknown, true},
		{"Delivered cannot cancel", order.Delivered, order.Status.Cancel, order.Unknown, true},
		{"Cancelled cannot process", order.Cancelled, order.Status.Process, order.Unknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.apply(tt.from)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
