package ethereum

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/batchauction/dexclient/domain"
	orderbookdomain "github.com/batchauction/dexclient/domain/orderbook"
)

// auctionElementSize is the packed size of an order returned by getEncodedUserOrders:
//
//	owner (20) | sell token balance (32) | buy token (2) | sell token (2) | valid from (4) | valid until (4) |
//	price numerator (16) | price denominator (16) | used amount (16)
const auctionElementSize = 112

// InvalidAuctionElementsError is returned when encoded orders are not a whole number of elements.
type InvalidAuctionElementsError struct {
	Length int
}

func (e InvalidAuctionElementsError) Error() string {
	return fmt.Sprintf("encoded orders of %d bytes are not a multiple of %d", e.Length, auctionElementSize)
}

// decodeAuctionElements decodes the packed orders of owner.
// Elements of another owner are skipped.
func decodeAuctionElements(owner common.Address, encoded []byte) ([]orderbookdomain.Order, error) {
	if len(encoded)%auctionElementSize != 0 {
		return nil, InvalidAuctionElementsError{Length: len(encoded)}
	}

	orders := make([]orderbookdomain.Order, 0, len(encoded)/auctionElementSize)
	for offset := 0; offset < len(encoded); offset += auctionElementSize {
		element := encoded[offset : offset+auctionElementSize]

		if common.BytesToAddress(element[:20]) != owner {
			continue
		}

		priceNumerator := new(big.Int).SetBytes(element[64:80])
		priceDenominator := new(big.Int).SetBytes(element[80:96])
		usedAmount := new(big.Int).SetBytes(element[96:112])

		remainingAmount := new(big.Int).Sub(priceDenominator, usedAmount)
		if remainingAmount.Sign() < 0 {
			remainingAmount.SetInt64(0)
		}

		orders = append(orders, orderbookdomain.Order{
			BuyTokenID:       binary.BigEndian.Uint16(element[52:54]),
			SellTokenID:      binary.BigEndian.Uint16(element[54:56]),
			ValidFrom:        domain.BatchID(binary.BigEndian.Uint32(element[56:60])),
			ValidUntil:       domain.BatchID(binary.BigEndian.Uint32(element[60:64])),
			PriceNumerator:   osmomath.NewIntFromBigInt(priceNumerator),
			PriceDenominator: osmomath.NewIntFromBigInt(priceDenominator),
			RemainingAmount:  osmomath.NewIntFromBigInt(remainingAmount),
		})
	}

	return orders, nil
}
